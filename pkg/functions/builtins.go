package functions

// builtins is the full builtin function set. Default() hands out copies;
// this table itself is never exposed or mutated.
var builtins = Table{
	"abs":         {Name: "abs", Args: []ArgSpec{{Types: []ArgType{ArgNumber}}}, Impl: fnAbs},
	"avg":         {Name: "avg", Args: []ArgSpec{{Types: []ArgType{ArgArrayNumber}}}, Impl: fnAvg},
	"ceil":        {Name: "ceil", Args: []ArgSpec{{Types: []ArgType{ArgNumber}}}, Impl: fnCeil},
	"contains":    {Name: "contains", Args: []ArgSpec{{Types: []ArgType{ArgArray, ArgString}}, {Types: []ArgType{ArgAny}}}, Impl: fnContains},
	"ends_with":   {Name: "ends_with", Args: []ArgSpec{{Types: []ArgType{ArgString}}, {Types: []ArgType{ArgString}}}, Impl: fnEndsWith},
	"floor":       {Name: "floor", Args: []ArgSpec{{Types: []ArgType{ArgNumber}}}, Impl: fnFloor},
	"join":        {Name: "join", Args: []ArgSpec{{Types: []ArgType{ArgString}}, {Types: []ArgType{ArgArrayString}}}, Impl: fnJoin},
	"keys":        {Name: "keys", Args: []ArgSpec{{Types: []ArgType{ArgObject}}}, Impl: fnKeys},
	"length":      {Name: "length", Args: []ArgSpec{{Types: []ArgType{ArgString, ArgArray, ArgObject}}}, Impl: fnLength},
	"map":         {Name: "map", Args: []ArgSpec{{Types: []ArgType{ArgExpRef}}, {Types: []ArgType{ArgArray}}}, Impl: fnMap},
	"max":         {Name: "max", Args: []ArgSpec{{Types: []ArgType{ArgArrayNumber, ArgArrayString}}}, Impl: fnMax},
	"max_by":      {Name: "max_by", Args: []ArgSpec{{Types: []ArgType{ArgArray}}, {Types: []ArgType{ArgExpRef}}}, Impl: fnMaxBy},
	"merge":       {Name: "merge", Args: []ArgSpec{{Types: []ArgType{ArgObject}, Variadic: true}}, Impl: fnMerge},
	"min":         {Name: "min", Args: []ArgSpec{{Types: []ArgType{ArgArrayNumber, ArgArrayString}}}, Impl: fnMin},
	"min_by":      {Name: "min_by", Args: []ArgSpec{{Types: []ArgType{ArgArray}}, {Types: []ArgType{ArgExpRef}}}, Impl: fnMinBy},
	"not_null":    {Name: "not_null", Args: []ArgSpec{{Types: []ArgType{ArgAny}, Variadic: true}}, Impl: fnNotNull},
	"reverse":     {Name: "reverse", Args: []ArgSpec{{Types: []ArgType{ArgString, ArgArray}}}, Impl: fnReverse},
	"sort":        {Name: "sort", Args: []ArgSpec{{Types: []ArgType{ArgArrayNumber, ArgArrayString}}}, Impl: fnSort},
	"sort_by":     {Name: "sort_by", Args: []ArgSpec{{Types: []ArgType{ArgArray}}, {Types: []ArgType{ArgExpRef}}}, Impl: fnSortBy},
	"starts_with": {Name: "starts_with", Args: []ArgSpec{{Types: []ArgType{ArgString}}, {Types: []ArgType{ArgString}}}, Impl: fnStartsWith},
	"sum":         {Name: "sum", Args: []ArgSpec{{Types: []ArgType{ArgArrayNumber}}}, Impl: fnSum},
	"to_array":    {Name: "to_array", Args: []ArgSpec{{Types: []ArgType{ArgAny}}}, Impl: fnToArray},
	"to_number":   {Name: "to_number", Args: []ArgSpec{{Types: []ArgType{ArgAny}}}, Impl: fnToNumber},
	"to_string":   {Name: "to_string", Args: []ArgSpec{{Types: []ArgType{ArgAny}}}, Impl: fnToString},
	"type":        {Name: "type", Args: []ArgSpec{{Types: []ArgType{ArgAny}}}, Impl: fnType},
	"values":      {Name: "values", Args: []ArgSpec{{Types: []ArgType{ArgObject}}}, Impl: fnValues},
}
