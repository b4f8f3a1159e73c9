package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Dos clientes compiten por 120 unidades: el reparto ponderado con banda
// 5%-40% y la redistribución del sobrante deben dejar A=86.4 y B=33.6.
func TestDistribute_RepartoPonderadoConSobrante(t *testing.T) {
	demands := map[string]float64{"A": 100, "B": 100}
	priorities := map[string]float64{"A": 80, "B": 20}

	grants := Distribute(120, demands, priorities, DefaultPolicy())

	assert.InDelta(t, 86.4, grants["A"], 1e-9)
	assert.InDelta(t, 33.6, grants["B"], 1e-9)

	var total float64
	for _, g := range grants {
		total += g
	}
	assert.InDelta(t, 120, total, 1e-9, "el reparto debe agotar el stock cuando la demanda lo supera")
}

// Un cliente con prioridad cero no recibe nada, aunque sea el único
// demandante y sobre stock.
func TestDistribute_PrioridadCeroQuedaExcluido(t *testing.T) {
	grants := Distribute(1000, map[string]float64{"solo": 50}, map[string]float64{"solo": 0}, DefaultPolicy())
	assert.Empty(t, grants)
}

func TestDistribute_SinStockNiDemanda(t *testing.T) {
	assert.Empty(t, Distribute(0, map[string]float64{"A": 10}, map[string]float64{"A": 50}, DefaultPolicy()))
	assert.Empty(t, Distribute(100, map[string]float64{}, map[string]float64{}, DefaultPolicy()))
}

// La suma de otorgamientos nunca excede el stock disponible y ningún
// otorgamiento excede la demanda del cliente.
func TestDistribute_Conservacion(t *testing.T) {
	cases := []struct {
		name       string
		available  float64
		demands    map[string]float64
		priorities map[string]float64
	}{
		{
			name:       "demanda supera stock",
			available:  50,
			demands:    map[string]float64{"A": 100, "B": 80, "C": 60},
			priorities: map[string]float64{"A": 90, "B": 50, "C": 10},
		},
		{
			name:       "stock supera demanda",
			available:  10000,
			demands:    map[string]float64{"A": 30, "B": 20},
			priorities: map[string]float64{"A": 70, "B": 70},
		},
		{
			name:       "prioridades iguales",
			available:  90,
			demands:    map[string]float64{"A": 60, "B": 60, "C": 60},
			priorities: map[string]float64{"A": 40, "B": 40, "C": 40},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grants := Distribute(tc.available, tc.demands, tc.priorities, DefaultPolicy())
			var total float64
			for cid, g := range grants {
				assert.LessOrEqual(t, g, tc.demands[cid], "otorgamiento no excede demanda de %s", cid)
				assert.GreaterOrEqual(t, g, 0.0)
				total += g
			}
			assert.LessOrEqual(t, total, tc.available+1e-9, "la suma no excede el stock")
		})
	}
}

// El reparto es determinista: mismas entradas, mismo resultado, sin importar
// el orden de inserción en los mapas.
func TestDistribute_Determinista(t *testing.T) {
	demands := map[string]float64{"c3": 40, "c1": 40, "c2": 40}
	priorities := map[string]float64{"c1": 50, "c2": 50, "c3": 50}

	first := Distribute(100, demands, priorities, DefaultPolicy())
	for i := 0; i < 20; i++ {
		again := Distribute(100, demands, priorities, DefaultPolicy())
		require.Equal(t, first, again)
	}
}

func TestPolicy_Clamp(t *testing.T) {
	p := DefaultPolicy() // banda [5%, 40%]
	cases := []struct {
		name                                   string
		tentative, available, demand, remaining float64
		want                                   float64
	}{
		{"dentro de banda", 30, 100, 100, 100, 30},
		{"sube al minimo", 1, 100, 100, 100, 5},
		{"baja al maximo", 90, 100, 100, 100, 40},
		{"demanda recorta tras banda", 90, 100, 20, 100, 20},
		{"remaining recorta al final", 30, 100, 100, 12, 12},
		{"minimo recortado por demanda", 0, 100, 2, 100, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Clamp(tc.tentative, tc.available, tc.demand, tc.remaining)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestNormalizePriorities(t *testing.T) {
	out := NormalizePriorities(map[string]float64{"A": 80, "B": 40, "C": 0})
	assert.InDelta(t, 100, out["A"], 1e-9)
	assert.InDelta(t, 50, out["B"], 1e-9)
	assert.InDelta(t, 0, out["C"], 1e-9)

	// Todo en cero: se devuelve tal cual, sin dividir por cero.
	zero := NormalizePriorities(map[string]float64{"A": 0, "B": 0})
	assert.InDelta(t, 0, zero["A"], 1e-9)
	assert.InDelta(t, 0, zero["B"], 1e-9)
}

func TestSplitProportional(t *testing.T) {
	items := []ItemDemand{
		{OrderID: "o1", ItemID: "i1", Requested: 60},
		{OrderID: "o2", ItemID: "i2", Requested: 40},
	}

	grants, remaining := SplitProportional(50, items, 200)
	assert.InDelta(t, 30, grants[0], 1e-9)
	assert.InDelta(t, 20, grants[1], 1e-9)
	assert.InDelta(t, 150, remaining, 1e-9)
}

// remaining es el contador autoritativo: el reparto por líneas nunca lo deja
// negativo aunque el otorgamiento lo exceda.
func TestSplitProportional_RemainingAcota(t *testing.T) {
	items := []ItemDemand{
		{OrderID: "o1", ItemID: "i1", Requested: 100},
		{OrderID: "o2", ItemID: "i2", Requested: 100},
	}

	grants, remaining := SplitProportional(80, items, 50)
	assert.InDelta(t, 40, grants[0], 1e-9)
	assert.InDelta(t, 10, grants[1], 1e-9)
	assert.InDelta(t, 0, remaining, 1e-9)
}

func TestSplitProportional_SinDemanda(t *testing.T) {
	grants, remaining := SplitProportional(10, nil, 30)
	assert.Empty(t, grants)
	assert.InDelta(t, 30, remaining, 1e-9)
}
