package config

import (
	_ "embed"
	"fmt"
	"os"

	"metrobus/internal/domain/models"
	"metrobus/internal/ledger"
	"metrobus/internal/topology"

	"gopkg.in/yaml.v3"
)

//go:embed fleet.yaml
var defaultFleet []byte

// FleetSeed is the initial line and schedule board.
type FleetSeed struct {
	Stations []string  `yaml:"stations"`
	Buses    []BusSeed `yaml:"buses"`
}

type BusSeed struct {
	ID            string `yaml:"id"`
	Route         string `yaml:"route"`
	DepartureTime string `yaml:"departure_time"`
	Status        string `yaml:"status"`
	Capacity      int    `yaml:"capacity"`
}

// LoadFleetSeed reads the seed from path, or the built-in seed when path is
// empty.
func LoadFleetSeed(path string) (FleetSeed, error) {
	raw := defaultFleet
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return FleetSeed{}, fmt.Errorf("read fleet file: %w", err)
		}
		raw = b
	}
	return ParseFleetSeed(raw)
}

func ParseFleetSeed(raw []byte) (FleetSeed, error) {
	var seed FleetSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return FleetSeed{}, fmt.Errorf("parse fleet seed: %w", err)
	}
	if len(seed.Buses) == 0 {
		return FleetSeed{}, fmt.Errorf("fleet seed has no buses")
	}
	return seed, nil
}

// Build turns the seed into a station topology and a fleet of empty buses.
func (s FleetSeed) Build() (*topology.Topology, *ledger.Fleet, error) {
	topo, err := topology.New(s.Stations)
	if err != nil {
		return nil, nil, err
	}
	buses := make([]*ledger.Bus, 0, len(s.Buses))
	for _, bs := range s.Buses {
		b, err := ledger.NewBus(bs.ID, bs.Route, bs.DepartureTime, bs.Capacity)
		if err != nil {
			return nil, nil, err
		}
		switch st := models.BusStatus(bs.Status); st {
		case "":
		case models.BusScheduled, models.BusDeparted, models.BusCancelled:
			b.Status = st
		default:
			return nil, nil, fmt.Errorf("bus %s: unknown status %q", bs.ID, bs.Status)
		}
		buses = append(buses, b)
	}
	fleet, err := ledger.NewFleet(buses...)
	if err != nil {
		return nil, nil, err
	}
	return topo, fleet, nil
}
