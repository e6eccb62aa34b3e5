package models

import "testing"

func TestParseCategoria(t *testing.T) {
	testCases := []struct {
		in   string
		want Categoria
	}{
		{"incendio", CategoriaIncendio},
		{"desastre", CategoriaDesastre},
		{"", ""},
		{"meteorito", CategoriaOtro},
	}
	for _, testCase := range testCases {
		if got := ParseCategoria(testCase.in); got != testCase.want {
			t.Fatalf("ParseCategoria(%q) = %q, esperado %q", testCase.in, got, testCase.want)
		}
	}
}

func TestParseEstadoProcesamiento(t *testing.T) {
	testCases := []struct {
		in   string
		want EstadoProcesamiento
	}{
		{"procesado", EstadoProcesado},
		{"fallido", EstadoFallido},
		{"", EstadoPendiente},
		{"en_cola", EstadoPendiente},
	}
	for _, testCase := range testCases {
		if got := ParseEstadoProcesamiento(testCase.in); got != testCase.want {
			t.Fatalf("ParseEstadoProcesamiento(%q) = %q, esperado %q", testCase.in, got, testCase.want)
		}
	}
}

func TestBuscarPdI(t *testing.T) {
	h := HechoIndexado{PdIs: []PdIIndexado{{PdIID: "pdi-1"}, {PdIID: "pdi-2"}}}

	if !h.TienePdI("pdi-2") || h.TienePdI("pdi-9") {
		t.Fatal("TienePdI incorrecto")
	}

	p := h.BuscarPdI("pdi-2")
	if p == nil || p.PdIID != "pdi-2" {
		t.Fatalf("BuscarPdI devolvió %+v", p)
	}
	// el puntero apunta al slice, las mutaciones se ven en el hecho
	p.OCRText = "texto"
	if h.PdIs[1].OCRText != "texto" {
		t.Fatal("BuscarPdI no devuelve un puntero al elemento embebido")
	}
	if h.BuscarPdI("pdi-9") != nil {
		t.Fatal("un pdi desconocido debe dar nil")
	}
}
