package worklua

import (
	"fmt"
	"sort"

	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/antdata"
	lua "github.com/yuin/gopher-lua"
)

func stringify(v lua.LValue) string {
	return fmt.Sprintf("%+v", convertLuaValue(v, nil))
}

func convertLuaValue(value lua.LValue, visited map[*lua.LTable]bool) interface{} {

	if visited == nil {
		visited = make(map[*lua.LTable]bool)
	}
	if value == lua.LNil {
		return nil
	}

	switch converted := value.(type) {
	case lua.LBool:
		return bool(converted)
	case lua.LNumber:
		return float64(converted)
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(converted)
	case *lua.LTable:
		if visited[converted] {
			return "?nested"
		}
		visited[converted] = true

		isArray := true
		converted.ForEach(func(key, value lua.LValue) {
			if key.Type() != lua.LTNumber {
				isArray = false
			}
		})
		if isArray {
			var ret []interface{}
			converted.ForEach(func(_, value lua.LValue) {
				ret = append(ret, convertLuaValue(value, visited))
			})
			return ret
		}
		ret := make(map[string]interface{})
		converted.ForEach(func(key, value lua.LValue) {
			ret[fmt.Sprint(convertLuaValue(key, visited))] = convertLuaValue(value, visited)
		})
		return ret
	default:
		return value.Type().String()
	}
}

// tableToValues converts a table of named numbers and strings to model
// parameters or gain query arguments.
func tableToValues(t *lua.LTable) (antdata.Values, error) {
	r := make(antdata.Values)
	var err error
	t.ForEach(func(k, v lua.LValue) {
		if err != nil {
			return
		}
		key, ok := k.(lua.LString)
		if !ok {
			err = merry.Errorf("type error: key %v must be string", k)
			return
		}
		switch v := v.(type) {
		case lua.LNumber:
			r[string(key)] = float64(v)
		case lua.LString:
			r[string(key)] = string(v)
		case lua.LBool:
			r[string(key)] = bool(v)
		default:
			err = merry.Errorf("type error: %q: %s", key, v.Type())
		}
	})
	return r, err
}

// toLuaValue converts decoded JSON-like data to tables. Map keys are set in
// sorted order.
func toLuaValue(L *lua.LState, v interface{}) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case float64:
		return lua.LNumber(v)
	case int:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case antdata.NullFloat:
		if !v.Valid {
			return lua.LNil
		}
		return lua.LNumber(v.Float64)
	case []interface{}:
		t := L.CreateTable(len(v), 0)
		for _, x := range v {
			t.Append(toLuaValue(L, x))
		}
		return t
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := L.CreateTable(0, len(v))
		for _, k := range keys {
			t.RawSetString(k, toLuaValue(L, v[k]))
		}
		return t
	case antdata.Params:
		return toLuaValue(L, map[string]interface{}(v))
	default:
		return lua.LString(fmt.Sprint(v))
	}
}
