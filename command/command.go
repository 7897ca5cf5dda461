// Package command defines the static table of document commands the client
// binds at construction time. Pure data; binding and marshaling live in the
// client package.
package command

// Wire-level command names. Each one is a sub-command of the store's
// structured-document command family.
const (
	Del       = "JSON.DEL"
	Get       = "JSON.GET"
	MGet      = "JSON.MGET"
	Set       = "JSON.SET"
	Type      = "JSON.TYPE"
	NumIncrBy = "JSON.NUMINCRBY"
	NumMultBy = "JSON.NUMMULTBY"
	StrAppend = "JSON.STRAPPEND"
	StrLen    = "JSON.STRLEN"
	ArrAppend = "JSON.ARRAPPEND"
	ArrIndex  = "JSON.ARRINDEX"
	ArrInsert = "JSON.ARRINSERT"
	ArrLen    = "JSON.ARRLEN"
	ArrPop    = "JSON.ARRPOP"
	ArrTrim   = "JSON.ARRTRIM"
	ObjKeys   = "JSON.OBJKEYS"
	ObjLen    = "JSON.OBJLEN"
	Debug     = "JSON.DEBUG"
	Forget    = "JSON.FORGET"
	RESP      = "JSON.RESP"
)

// Descriptor identifies one document command.
type Descriptor struct {
	Op   string // logical operation name, e.g. "arrappend"
	Wire string // wire-level command name, e.g. "JSON.ARRAPPEND"
}

// Table enumerates every supported command in binding order.
// A slice rather than a map: binding iteration must be deterministic.
var Table = []Descriptor{
	{Op: "del", Wire: Del},
	{Op: "get", Wire: Get},
	{Op: "mget", Wire: MGet},
	{Op: "set", Wire: Set},
	{Op: "type", Wire: Type},
	{Op: "numincrby", Wire: NumIncrBy},
	{Op: "nummultby", Wire: NumMultBy},
	{Op: "strappend", Wire: StrAppend},
	{Op: "strlen", Wire: StrLen},
	{Op: "arrappend", Wire: ArrAppend},
	{Op: "arrindex", Wire: ArrIndex},
	{Op: "arrinsert", Wire: ArrInsert},
	{Op: "arrlen", Wire: ArrLen},
	{Op: "arrpop", Wire: ArrPop},
	{Op: "arrtrim", Wire: ArrTrim},
	{Op: "objkeys", Wire: ObjKeys},
	{Op: "objlen", Wire: ObjLen},
	{Op: "debug", Wire: Debug},
	{Op: "forget", Wire: Forget},
	{Op: "resp", Wire: RESP},
}
