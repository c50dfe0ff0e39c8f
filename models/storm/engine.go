package storm

import (
	"errors"
	"fmt"
	"time"

	"github.com/justinjudd/scoreboard/models"

	"github.com/asdine/storm"
	"github.com/asdine/storm/codec/msgpack"
	"github.com/asdine/storm/q"
	"github.com/rs/xid"
)

type engine struct {
	*storm.DB
	now func() time.Time
}

// NewStorageEngine creates and returns a StorageEngine meeting the engine interface, using a storm db backend
func NewStorageEngine(path string) (models.StorageEngine, error) {
	db, err := storm.Open(path, storm.Codec(msgpack.Codec))
	//db, err := storm.Open(path) // Use this for debug or if you want JSON stored in the database
	if err != nil {
		return nil, fmt.Errorf("unable to open storage engine: %w", err)
	}

	return &engine{DB: db, now: time.Now}, nil
}

func (e *engine) CreateMatch(sportType string, format models.TennisFormat, players models.Players) (*models.MatchRecord, error) {
	now := e.now()
	rec := models.MatchRecord{
		ID:            xid.New().String(),
		SportType:     sportType,
		Format:        format,
		Players:       players,
		Status:        models.MatchStatus_NOT_STARTED,
		CompletedSets: []models.CompletedSet{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := e.Save(&rec); err != nil {
		return nil, fmt.Errorf("unable to create match: %w", err)
	}
	return &rec, nil
}

// GetMatches returns every stored match, newest first
func (e *engine) GetMatches() ([]models.MatchRecord, error) {
	var recs []models.MatchRecord
	err := e.Select().OrderBy("CreatedAt").Reverse().Find(&recs)
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return nil, fmt.Errorf("unable to list matches: %w", err)
	}
	if recs == nil {
		recs = []models.MatchRecord{}
	}
	return recs, nil
}

func (e *engine) GetMatch(id string) (*models.MatchRecord, error) {
	var rec models.MatchRecord
	err := e.Select(q.Eq("ID", id)).First(&rec)
	if errors.Is(err, storm.ErrNotFound) {
		return nil, models.ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("unable to get match %s: %w", id, err)
	}
	return &rec, nil
}

func (e *engine) UpdateMatch(id string, update models.MatchUpdate) (*models.MatchRecord, error) {
	rec, err := e.GetMatch(id)
	if err != nil {
		return nil, err
	}
	models.ApplyUpdate(rec, update)
	return rec, e.put(rec)
}

// SaveState stores snapshot on the record and derives the record status, winner and completed sets from it
func (e *engine) SaveState(id string, snapshot models.Snapshot) (*models.MatchRecord, error) {
	rec, err := e.GetMatch(id)
	if err != nil {
		return nil, err
	}
	snap := snapshot.Clone()
	rec.MatchState = &snap
	rec.Status = models.StatusOf(snap)
	rec.Winner = snap.Winner
	rec.CompletedSets = snap.Clone().CompletedSets
	return rec, e.put(rec)
}

func (e *engine) DeleteMatch(id string) error {
	rec, err := e.GetMatch(id)
	if err != nil {
		return err
	}
	if err := e.DeleteStruct(rec); err != nil {
		return fmt.Errorf("unable to delete match %s: %w", id, err)
	}
	return nil
}

func (e *engine) put(rec *models.MatchRecord) error {
	rec.UpdatedAt = e.now()
	if rec.CompletedSets == nil {
		rec.CompletedSets = []models.CompletedSet{}
	}
	if err := e.Save(rec); err != nil {
		return fmt.Errorf("unable to save match %s: %w", rec.ID, err)
	}
	return nil
}
