package repositories

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilterExcluyeCensuradosSiempre(t *testing.T) {
	casos := []SearchFilter{
		{},
		{Query: "incendio"},
		{Tags: []string{"urgente"}},
		{Coleccion: "desastres-2025"},
	}
	for _, f := range casos {
		filter := buildFilter(f)
		if filter["censurado"] != false {
			t.Fatalf("filtro %+v no excluye censurados: %v", f, filter)
		}
	}
}

func TestBuildFilterTexto(t *testing.T) {
	filter := buildFilter(SearchFilter{Query: "incendio depósito"})

	text, ok := filter["$text"].(bson.M)
	if !ok {
		t.Fatalf("falta cláusula $text: %v", filter)
	}
	if text["$search"] != "incendio depósito" {
		t.Fatalf("$search incorrecto: %v", text)
	}
}

func TestBuildFilterColeccion(t *testing.T) {
	filter := buildFilter(SearchFilter{Coleccion: "desastres-2025"})

	if filter["colecciones"] != "desastres-2025" {
		t.Fatalf("el filtro debe matchear contra colecciones: %v", filter)
	}
}

func TestBuildFilterTagsAny(t *testing.T) {
	filter := buildFilter(SearchFilter{Tags: []string{"urgente", "caba"}})

	esperado := []bson.M{
		{"etiquetas": bson.M{"$in": []string{"urgente", "caba"}}},
		{"etiquetas_ia": bson.M{"$in": []string{"urgente", "caba"}}},
	}
	if !reflect.DeepEqual(filter["$or"], esperado) {
		t.Fatalf("$or incorrecto: %v", filter["$or"])
	}
}

func TestBuildFilterTagsAll(t *testing.T) {
	filter := buildFilter(SearchFilter{Tags: []string{"urgente", "caba"}, TagsMatchAll: true})

	clauses, ok := filter["$and"].([]bson.M)
	if !ok || len(clauses) != 2 {
		t.Fatalf("esperada una cláusula $and por tag: %v", filter["$and"])
	}
	esperada := bson.M{"$or": []bson.M{
		{"etiquetas": "urgente"},
		{"etiquetas_ia": "urgente"},
	}}
	if !reflect.DeepEqual(clauses[0], esperada) {
		t.Fatalf("cláusula por tag incorrecta: %v", clauses[0])
	}
}
