// Package allocation implementa la matemática pura del reparto de stock entre
// clientes que compiten por un mismo ítem de inventario (servicio de dominio,
// sin I/O). El caso de uso de aplicación orquesta lecturas, transacción y
// persistencia alrededor de estas funciones.
//
// El reparto por ítem ocurre en dos pasadas sobre snapshots inmutables de
// demanda y prioridad:
//
//	Pasada 1: reparto ponderado por prioridad, acotado por la banda
//	          [stock*MinPct, stock*MaxPct] y por demanda/stock restante.
//	Pasada 2: el sobrante se redistribuye entre los beneficiarios de la
//	          pasada 1 en proporción a su prioridad, acotado por la demanda
//	          insatisfecha de cada uno.
//
// El stock restante es el contador autoritativo: cada otorgamiento lo
// decrementa y ninguna pasada puede dejarlo negativo.
package allocation

import (
	"math"
	"sort"
)

// Policy acota cuánto puede recibir un solo cliente en la pasada 1,
// como fracción del stock libre del ítem.
type Policy struct {
	MinPct float64
	MaxPct float64
}

// DefaultPolicy banda por defecto: 5% mínimo, 40% máximo por cliente.
func DefaultPolicy() Policy {
	return Policy{MinPct: 0.05, MaxPct: 0.40}
}

// Clamp aplica las cuatro cotas de la pasada 1 a un otorgamiento tentativo:
// primero lo lleva a la banda [available*MinPct, available*MaxPct] y luego lo
// recorta por la demanda del cliente y por el stock restante. El resultado
// nunca excede remaining, así la suma de otorgamientos conserva el stock.
func (p Policy) Clamp(tentative, available, demand, remaining float64) float64 {
	minAlloc := available * p.MinPct
	maxAlloc := available * p.MaxPct
	v := math.Min(math.Max(tentative, minAlloc), maxAlloc)
	return math.Min(math.Min(v, demand), remaining)
}

// NormalizePriorities escala las prioridades al rango 0-100 relativo al
// máximo. No cambia las proporciones del reparto (todas se dividen por el
// mismo máximo); existe para que el ranking sea legible en reportes.
func NormalizePriorities(priorities map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(priorities))
	var max float64
	for _, v := range priorities {
		if v > max {
			max = v
		}
	}
	for k, v := range priorities {
		if max > 0 {
			out[k] = v / max * 100
		} else {
			out[k] = v
		}
	}
	return out
}

// Distribute reparte el stock libre de UN ítem entre clientes con demanda
// positiva. demands y priorities son snapshots inmutables indexados por
// customer ID; el resultado es un mapa nuevo customer ID → cantidad otorgada.
//
// Un cliente con prioridad ≤ 0 queda excluido por completo: debe tener
// puntaje positivo para calificar, aunque sea el único demandante.
func Distribute(available float64, demands, priorities map[string]float64, policy Policy) map[string]float64 {
	if available <= 0 || len(demands) == 0 {
		return map[string]float64{}
	}

	sorted := customersByPriority(demands, priorities)

	var totalPriority float64
	for cid := range demands {
		totalPriority += priorities[cid]
	}

	// Pasada 1: reparto ponderado por prioridad.
	grants := make(map[string]float64, len(demands))
	remaining := available
	for _, cid := range sorted {
		if remaining <= 0 {
			break
		}
		priority := priorities[cid]
		if priority <= 0 {
			continue
		}
		demand := demands[cid]

		var tentative float64
		if totalPriority > 0 {
			tentative = math.Min(demand, math.Min(available*(priority/totalPriority), remaining))
		} else {
			tentative = math.Min(demand, remaining/float64(len(demands)))
		}

		granted := policy.Clamp(tentative, available, demand, remaining)
		if granted > 0 {
			grants[cid] = granted
			remaining -= granted
		}
	}

	// Pasada 2: redistribuir el sobrante entre los beneficiarios de la
	// pasada 1, proporcional a su prioridad sobre el snapshot del sobrante.
	if remaining > 0 && len(grants) > 0 {
		var recipientsPriority float64
		for cid := range grants {
			recipientsPriority += priorities[cid]
		}
		if recipientsPriority > 0 {
			leftover := remaining
			for _, cid := range sorted {
				granted, ok := grants[cid]
				if !ok {
					continue
				}
				share := priorities[cid] / recipientsPriority
				additional := math.Min(leftover*share, demands[cid]-granted)
				additional = math.Min(additional, remaining)
				if additional > 0 {
					grants[cid] += additional
					remaining -= additional
					if remaining <= 0 {
						break
					}
				}
			}
		}
	}

	return grants
}

// ItemDemand es la demanda de una línea de orden sobre el ítem en reparto.
type ItemDemand struct {
	OrderID   string
	ItemID    string
	Requested float64
}

// SplitProportional divide el otorgamiento de un cliente entre sus líneas de
// orden en proporción a la demanda de cada línea, recortando por la cantidad
// pedida de la línea y por el stock aún no distribuido del ítem (remaining).
// Devuelve los otorgamientos por línea (misma posición que items) y el
// remaining actualizado; la suma de otorgamientos nunca excede remaining,
// incluso con residuos de punto flotante.
func SplitProportional(grant float64, items []ItemDemand, remaining float64) ([]float64, float64) {
	out := make([]float64, len(items))
	var totalDemand float64
	for _, it := range items {
		totalDemand += it.Requested
	}
	if totalDemand <= 0 || grant <= 0 {
		return out, remaining
	}
	for i, it := range items {
		share := it.Requested / totalDemand
		granted := math.Min(grant*share, math.Min(it.Requested, remaining))
		if granted > 0 {
			out[i] = granted
			remaining -= granted
		}
	}
	return out, remaining
}

// customersByPriority ordena los clientes con demanda por prioridad
// descendente; empata por ID para que el reparto sea determinista.
func customersByPriority(demands, priorities map[string]float64) []string {
	ids := make([]string, 0, len(demands))
	for cid := range demands {
		ids = append(ids, cid)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := priorities[ids[i]], priorities[ids[j]]
		if pi != pj {
			return pi > pj
		}
		return ids[i] < ids[j]
	})
	return ids
}
