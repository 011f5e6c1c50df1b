package pkg

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FormatFloat formats v with at most precision decimal places and no
// trailing zeros, -1 meaning the shortest exact representation.
func FormatFloat(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// StructToMap converts data to its JSON object form.
func StructToMap(data interface{}) (map[string]interface{}, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	mapData := make(map[string]interface{})
	if err := json.Unmarshal(dataBytes, &mapData); err != nil {
		return nil, err
	}
	return mapData, nil
}
