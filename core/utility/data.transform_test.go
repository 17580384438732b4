package utility

import (
	"testing"
)

func TestParseFloatAceitaVirgulaDecimal(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{"-9,87", -9.87, true},
		{"-9.87", -9.87, true},
		{"  -23,5503 ", -23.5503, true},
		{float64(12.5), 12.5, true},
		{int32(7), 7, true},
		{int64(-3), -3, true},
		{"***", 0, false},
		{"NaN", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{nil, 0, false},
	}

	for _, c := range cases {
		got, ok := ParseFloat(c.in)
		if ok != c.ok {
			t.Errorf("ParseFloat(%v): ok = %v, esperado %v", c.in, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("ParseFloat(%v) = %v, esperado %v", c.in, got, c.want)
		}
	}
}

func TestParseIntTruncaFracao(t *testing.T) {
	if n, ok := ParseInt("2.0"); !ok || n != 2 {
		t.Errorf("ParseInt(2.0) = %d, %v", n, ok)
	}
	if n, ok := ParseInt("2,9"); !ok || n != 2 {
		t.Errorf("ParseInt(2,9) = %d, %v", n, ok)
	}
	if _, ok := ParseInt("null"); ok {
		t.Error("ParseInt(null) deveria falhar")
	}
}

func TestIsSentinel(t *testing.T) {
	for _, s := range []string{"", "   ", "nan", "NaN", "NULL", "***", "None", "-", "N/A"} {
		if !IsSentinel(s) {
			t.Errorf("IsSentinel(%q) deveria ser true", s)
		}
	}
	for _, s := range []string{"SÃO PAULO", "0", "none none", "A-1"} {
		if IsSentinel(s) {
			t.Errorf("IsSentinel(%q) deveria ser false", s)
		}
	}
}

func TestCleanStringCanonizaSentinelas(t *testing.T) {
	if got := CleanString("  ***  "); got != nil {
		t.Errorf("CleanString(***) = %v, esperado nil", *got)
	}
	if got := CleanString(nil); got != nil {
		t.Error("CleanString(nil) deveria ser nil")
	}
	if got := CleanString("  CAMPINAS "); got == nil || *got != "CAMPINAS" {
		t.Errorf("CleanString deveria aparar espaços, obteve %v", got)
	}
	if got := CleanString(int32(2010)); got == nil || *got != "2010" {
		t.Errorf("CleanString(2010) = %v", got)
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     bool
	}{
		{-23.55, -46.63, true},
		{0, 0, false},     // marcador de coordenada ausente
		{0, -46.63, true}, // zero em um só eixo é válido
		{-91, 10, false},
		{91, 10, false},
		{10, -181, false},
		{10, 181, false},
		{-90, -180, true},
		{90, 180, true},
	}

	for _, c := range cases {
		if got := ValidCoordinates(c.lat, c.lon); got != c.want {
			t.Errorf("ValidCoordinates(%v, %v) = %v, esperado %v", c.lat, c.lon, got, c.want)
		}
	}
}

func TestToString(t *testing.T) {
	if got := ToString(float64(39687)); got != "39687" {
		t.Errorf("ToString(39687.0) = %q", got)
	}
	if got := ToString(int64(42)); got != "42" {
		t.Errorf("ToString(42) = %q", got)
	}
	if got := ToString(nil); got != "" {
		t.Errorf("ToString(nil) = %q", got)
	}
}
