package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/facundo-gs/busqueda-api/config"
	"github.com/facundo-gs/busqueda-api/dto"
	"github.com/facundo-gs/busqueda-api/models"
)

// fakeHechoStore keeps aggregates in a map and can fail the next N calls of
// either operation to exercise the retry path.
type fakeHechoStore struct {
	mu   sync.Mutex
	docs map[string]models.HechoIndexado

	failFinds   int
	failUpserts int
	upserts     int
}

func newFakeHechoStore() *fakeHechoStore {
	return &fakeHechoStore{docs: map[string]models.HechoIndexado{}}
}

func (f *fakeHechoStore) FindByHechoID(_ context.Context, hechoID string) (*models.HechoIndexado, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFinds > 0 {
		f.failFinds--
		return nil, errors.New("find transitorio")
	}
	doc, ok := f.docs[hechoID]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (f *fakeHechoStore) Upsert(_ context.Context, h *models.HechoIndexado) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpserts > 0 {
		f.failUpserts--
		return errors.New("upsert transitorio")
	}
	f.upserts++
	f.docs[h.HechoID] = *h
	return nil
}

func (f *fakeHechoStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

func nuevoServicio(store HechoStore) (*IndexacionService, *[]time.Duration) {
	svc := NewIndexacionService(store, config.RetryConfig{MaxAttempts: 3, BaseDelayMillis: 1000})
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	esperas := &[]time.Duration{}
	svc.sleep = func(_ context.Context, d time.Duration) error {
		*esperas = append(*esperas, d)
		return nil
	}
	return svc, esperas
}

func hechoDePrueba(id string) dto.HechoDTO {
	return dto.HechoDTO{
		ID:              id,
		NombreColeccion: "desastres",
		Titulo:          "Incendio en depósito",
		Categoria:       "incendio",
	}
}

func TestIndexarHechoReplayDejaUnSoloDocumento(t *testing.T) {
	store := newFakeHechoStore()
	svc, _ := nuevoServicio(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.IndexarHecho(ctx, hechoDePrueba("h-1")); err != nil {
			t.Fatalf("replay %d: %v", i, err)
		}
	}

	if store.count() != 1 {
		t.Fatalf("replays crearon %d documentos", store.count())
	}
	doc := store.docs["h-1"]
	if doc.Titulo != "Incendio en depósito" || len(doc.Colecciones) != 1 {
		t.Fatalf("documento divergió tras replays: %+v", doc)
	}
}

func TestIndexarHechoSinIDEsInvalido(t *testing.T) {
	svc, _ := nuevoServicio(newFakeHechoStore())

	err := svc.IndexarHecho(context.Background(), dto.HechoDTO{Titulo: "sin id"})
	if !errors.Is(err, ErrPayloadInvalido) {
		t.Fatalf("esperado ErrPayloadInvalido, obtenido %v", err)
	}
}

func TestIndexarPdIConHechoDesconocidoSeDifiere(t *testing.T) {
	store := newFakeHechoStore()
	svc, _ := nuevoServicio(store)

	res, err := svc.IndexarPdI(context.Background(), dto.PdIDTO{ID: "pdi-1", HechoID: "fantasma"})
	if err != nil {
		t.Fatalf("un diferido no es un error: %v", err)
	}
	if res != IngestaDiferida {
		t.Fatalf("resultado esperado diferida, obtenido %q", res)
	}
	if store.count() != 0 {
		t.Fatal("un pdi diferido no debe crear documentos")
	}
}

func TestIndexarPdIBajoHechoConocido(t *testing.T) {
	store := newFakeHechoStore()
	svc, _ := nuevoServicio(store)
	ctx := context.Background()

	if err := svc.IndexarHecho(ctx, hechoDePrueba("h-1")); err != nil {
		t.Fatal(err)
	}
	res, err := svc.IndexarPdI(ctx, dto.PdIDTO{ID: "pdi-1", HechoID: "h-1", EtiquetasIA: []string{"fuego"}})
	if err != nil || res != IngestaOK {
		t.Fatalf("res=%q err=%v", res, err)
	}

	doc := store.docs["h-1"]
	if len(doc.PdIs) != 1 || len(doc.EtiquetasIA) != 1 {
		t.Fatalf("pdi no incorporado: %+v", doc)
	}
}

func TestReintentosConBackoffExponencial(t *testing.T) {
	store := newFakeHechoStore()
	store.failUpserts = 2
	svc, esperas := nuevoServicio(store)

	if err := svc.IndexarHecho(context.Background(), hechoDePrueba("h-1")); err != nil {
		t.Fatalf("debía recuperarse al tercer intento: %v", err)
	}
	if len(*esperas) != 2 {
		t.Fatalf("esperadas 2 pausas, hubo %d", len(*esperas))
	}
	if (*esperas)[0] != time.Second || (*esperas)[1] != 2*time.Second {
		t.Fatalf("backoff esperado [1s 2s], obtenido %v", *esperas)
	}
	if store.count() != 1 {
		t.Fatal("el documento debía quedar escrito")
	}
}

func TestReintentosAgotadosDevuelvenError(t *testing.T) {
	store := newFakeHechoStore()
	store.failUpserts = 10
	svc, esperas := nuevoServicio(store)

	err := svc.IndexarHecho(context.Background(), hechoDePrueba("h-1"))
	if err == nil {
		t.Fatal("esperado error tras agotar reintentos")
	}
	// 3 intentos, 2 pausas intermedias
	if len(*esperas) != 2 {
		t.Fatalf("esperadas 2 pausas, hubo %d", len(*esperas))
	}
	if store.count() != 0 {
		t.Fatal("nada debía quedar escrito")
	}
}

func TestCensurarHechoEsIrreversibleEIdempotente(t *testing.T) {
	store := newFakeHechoStore()
	svc, _ := nuevoServicio(store)
	ctx := context.Background()

	if err := svc.IndexarHecho(ctx, hechoDePrueba("h-1")); err != nil {
		t.Fatal(err)
	}
	if res, err := svc.CensurarHecho(ctx, "h-1", "sol-1"); err != nil || res != IngestaOK {
		t.Fatalf("res=%q err=%v", res, err)
	}
	escrituras := store.upserts

	if res, err := svc.CensurarHecho(ctx, "h-1", "sol-2"); err != nil || res != IngestaOK {
		t.Fatalf("segunda censura: res=%q err=%v", res, err)
	}
	if store.upserts != escrituras {
		t.Fatal("una censura repetida no debe escribir")
	}
	doc := store.docs["h-1"]
	if !doc.Censurado || doc.SolicitudBorradoID != "sol-1" {
		t.Fatalf("campos de censura incorrectos: %+v", doc)
	}
}

func TestCensurarHechoDesconocidoSeDifiere(t *testing.T) {
	svc, _ := nuevoServicio(newFakeHechoStore())

	res, err := svc.CensurarHecho(context.Background(), "fantasma", "sol-1")
	if err != nil || res != IngestaDiferida {
		t.Fatalf("res=%q err=%v", res, err)
	}
}

func TestReintentoCanceladoPorContexto(t *testing.T) {
	store := newFakeHechoStore()
	store.failUpserts = 10
	svc, _ := nuevoServicio(store)
	svc.sleep = sleepCtx

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.IndexarHecho(ctx, hechoDePrueba("h-1"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("esperado context.Canceled, obtenido %v", err)
	}
}
