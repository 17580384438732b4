package utility

import (
	"strconv"
	"strings"
)

// sentinels são os marcadores de valor ausente encontrados nos dados de origem.
// A comparação é feita em minúsculas, após trim.
var sentinels = map[string]struct{}{
	"":     {},
	"nan":  {},
	"null": {},
	"***":  {},
	"none": {},
	"-":    {},
	"n/a":  {},
}

// IsSentinel informa se o texto é um marcador de valor ausente
func IsSentinel(s string) bool {
	_, ok := sentinels[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// CleanString normaliza um valor textual vindo do banco: trim e sentinela → nil.
// Valores não textuais são convertidos para a representação padrão.
func CleanString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		s = ToString(v)
	}
	s = strings.TrimSpace(s)
	if IsSentinel(s) {
		return nil
	}
	return &s
}

// ToString converte um valor dinâmico do BSON para texto
func ToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ParseFloat converte um valor dinâmico para float64. Texto aceita vírgula como
// separador decimal (formato dos CSVs de origem: "-9,87").
func ParseFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		s := strings.TrimSpace(val)
		if IsSentinel(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ParseInt converte um valor dinâmico para int, truncando frações
// (texto "2.0" e "2,0" viram 2)
func ParseInt(v interface{}) (int, bool) {
	f, ok := ParseFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// ValidCoordinates aplica o predicado estrito de coordenadas:
// dentro dos intervalos e diferente de (0,0)
func ValidCoordinates(lat, lon float64) bool {
	if lat < -90 || lat > 90 {
		return false
	}
	if lon < -180 || lon > 180 {
		return false
	}
	if lat == 0 && lon == 0 {
		return false
	}
	return true
}
