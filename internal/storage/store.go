package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/fynnbrem/homepage/internal/collider"
	"github.com/fynnbrem/homepage/internal/dynamo"
	"github.com/fynnbrem/homepage/internal/physics"
	"github.com/fynnbrem/homepage/internal/sim"
)

const (
	KindArena = "arena"
	KindPi    = "pi"

	metadataFile = "metadata.json"
	statesFile   = "states.csv"
	recordsFile  = "records.msgpack"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`

	// arena runs
	TickRate float64              `json:"tick_rate,omitempty"`
	Ticks    int                  `json:"ticks,omitempty"`
	Contacts int                  `json:"contacts,omitempty"`
	World    *physics.World       `json:"world,omitempty"`
	Bounds   *physics.Bounds      `json:"bounds,omitempty"`
	Balls    []physics.BallConfig `json:"balls,omitempty"`

	// pi runs
	Digits     int                   `json:"digits,omitempty"`
	MassRatio  float64               `json:"mass_ratio,omitempty"`
	Collisions int64                 `json:"collisions,omitempty"`
	Records    int                   `json:"records,omitempty"`
	Blocks     *collider.BlockConfig `json:"blocks,omitempty"`
	Options    *collider.Options     `json:"options,omitempty"`
}

func (s *Store) newRun(kind, name string) (string, string, error) {
	runID := fmt.Sprintf("%s_%s_%d_%s", kind, name, time.Now().Unix(), uuid.NewV4().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", "", err
	}
	return runID, runDir, nil
}

func writeMetadata(runDir string, meta RunMetadata) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// SaveArena stores an arena run: metadata plus one CSV row per ball and
// snapshot.
func (s *Store) SaveArena(name string, world physics.World, cfg sim.Config, result *sim.Result) (string, error) {
	runID, runDir, err := s.newRun(KindArena, name)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kind:      KindArena,
		Name:      name,
		Timestamp: time.Now(),
		Metrics:   result.Metrics,
		TickRate:  cfg.TickRate,
		Ticks:     result.StepsTaken,
		Contacts:  result.Contacts,
		World:     &world,
	}
	if result.Final != nil {
		bounds := result.Final.Bounds
		meta.Bounds = &bounds
		meta.Balls = result.Final.Configs()
	}
	if err := writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, statesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"tick", "time", "ball", "x", "y", "vx", "vy"}); err != nil {
		return "", err
	}
	for _, snap := range result.Snapshots {
		for _, b := range snap.Balls {
			row := []string{
				strconv.Itoa(snap.Tick),
				formatFloat(snap.Time),
				b.ID,
				formatFloat(b.Pos[0]),
				formatFloat(b.Pos[1]),
				formatFloat(b.Vel[0]),
				formatFloat(b.Vel[1]),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// SavePi stores a pi run: metadata plus the msgpack-encoded record list.
func (s *Store) SavePi(setup collider.Setup, opts collider.Options, records []collider.Record) (string, error) {
	runID, runDir, err := s.newRun(KindPi, strconv.Itoa(setup.Digits))
	if err != nil {
		return "", err
	}

	blocks := setup.Blocks
	meta := RunMetadata{
		ID:         runID,
		Kind:       KindPi,
		Name:       fmt.Sprintf("%d digits", setup.Digits),
		Timestamp:  time.Now(),
		Digits:     setup.Digits,
		MassRatio:  setup.MassRatio,
		Collisions: collider.CountCollisions(records),
		Records:    len(records),
		Blocks:     &blocks,
		Options:    &opts,
	}
	if err := writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, recordsFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := msgpack.NewEncoder(f).Encode(records); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns all runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads the snapshots of an arena run back.
func (s *Store) LoadStates(runID string) ([]sim.Snapshot, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 7

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	snaps := make([]sim.Snapshot, 0)
	for i, row := range rows {
		if i == 0 {
			continue
		}

		tick, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", statesFile, i+1, err)
		}
		vals := make([]float64, 5)
		for j, col := range []int{1, 3, 4, 5, 6} {
			vals[j], err = strconv.ParseFloat(row[col], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", statesFile, i+1, err)
			}
		}

		if len(snaps) == 0 || snaps[len(snaps)-1].Tick != tick {
			snaps = append(snaps, sim.Snapshot{Tick: tick, Time: vals[0]})
		}
		last := &snaps[len(snaps)-1]
		last.Balls = append(last.Balls, sim.BallState{
			ID:  row[2],
			Pos: physics.Vec(vals[1], vals[2]),
			Vel: physics.Vec(vals[3], vals[4]),
		})
	}

	return snaps, nil
}

// LoadRecords reads the collision records of a pi run back.
func (s *Store) LoadRecords(runID string) ([]collider.Record, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, recordsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []collider.Record
	if err := msgpack.NewDecoder(f).Decode(&records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []collider.Record{}
	}
	return records, nil
}

// LoadArena rebuilds the last stored state of an arena run. Trails are
// filled from the stored snapshots, so their spacing follows the sample
// interval of the run.
func (s *Store) LoadArena(runID string) (*physics.Arena, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	if meta.Kind != KindArena || meta.Bounds == nil {
		return nil, fmt.Errorf("run %s is not an arena run: %w", runID, dynamo.ErrNotFound)
	}
	snaps, err := s.LoadStates(runID)
	if err != nil {
		return nil, err
	}

	trail := physics.DefaultTrailLength
	if meta.World != nil {
		trail = meta.World.TrailLength
	}

	arena := physics.NewArena(*meta.Bounds)
	for _, cfg := range meta.Balls {
		ball, err := physics.NewBall(cfg, physics.Vector2{}, physics.Vector2{})
		if err != nil {
			return nil, err
		}
		found := false
		for i := len(snaps) - 1; i >= 0; i-- {
			for _, bs := range snaps[i].Balls {
				if bs.ID != cfg.ID {
					continue
				}
				if !found {
					ball.Pos, ball.Vel = bs.Pos, bs.Vel
					found = true
				} else if len(ball.Path) < trail {
					ball.Path = append(ball.Path, bs.Pos)
				}
			}
		}
		if err := arena.Add(ball); err != nil {
			return nil, err
		}
	}
	return arena, nil
}
