package planner

import (
	"fmt"
	"math"

	"github.com/alexanderramin/datemate/internal/domain"
)

const (
	kmPerDegree = 111

	walkingMaxKm = 1.0
	transitMaxKm = 5.0

	walkingMin    = 15
	transitMin    = 25
	transitFare   = 1500
	taxiMinPerKm  = 3
	taxiFarePerKm = 1000
)

// Distance is a planar approximation in kilometres, not a geodesic one.
func Distance(a, b domain.Location) float64 {
	dLat := a.Latitude - b.Latitude
	dLng := a.Longitude - b.Longitude
	return math.Sqrt(dLat*dLat+dLng*dLng) * kmPerDegree
}

// OrderByLocality builds a greedy nearest-neighbour tour starting at the
// first spot. Ties go to the earlier spot.
func OrderByLocality(spots []domain.Spot) []domain.Spot {
	if len(spots) <= 1 {
		return append([]domain.Spot(nil), spots...)
	}
	remaining := append([]domain.Spot(nil), spots[1:]...)
	ordered := []domain.Spot{spots[0]}

	for len(remaining) > 0 {
		last := ordered[len(ordered)-1].Location
		best := 0
		for i := 1; i < len(remaining); i++ {
			if Distance(last, remaining[i].Location) < Distance(last, remaining[best].Location) {
				best = i
			}
		}
		ordered = append(ordered, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}

// PlanTransport picks the leg between two spots by distance.
func PlanTransport(from, to domain.Spot) domain.Transportation {
	d := Distance(from.Location, to.Location)
	switch {
	case d <= walkingMaxKm:
		return domain.Transportation{
			Mode:         domain.TransportWalking,
			DurationMin:  walkingMin,
			DistanceKm:   d,
			Instructions: []string{from.Name + "에서 도보로 이동"},
		}
	case d <= transitMaxKm:
		return domain.Transportation{
			Mode:         domain.TransportPublic,
			DurationMin:  transitMin,
			DistanceKm:   d,
			Cost:         transitFare,
			Instructions: []string{"지하철 또는 버스 이용"},
		}
	default:
		return domain.Transportation{
			Mode:         domain.TransportTaxi,
			DurationMin:  int(math.Floor(d * taxiMinPerKm)),
			DistanceKm:   d,
			Cost:         int(math.Floor(d * taxiFarePerKm)),
			Instructions: []string{fmt.Sprintf("택시 이용 (약 %.1fkm)", d)},
		}
	}
}

// AttachTransportation sets each item's outbound leg to the next item. The
// last item has none.
func AttachTransportation(items []domain.PlanItem) {
	for i := range items {
		relink(items, i)
	}
}

func relink(items []domain.PlanItem, i int) {
	if i < 0 || i >= len(items) {
		return
	}
	if i == len(items)-1 {
		items[i].Transport = nil
		return
	}
	t := PlanTransport(items[i].Spot, items[i+1].Spot)
	items[i].Transport = &t
}
