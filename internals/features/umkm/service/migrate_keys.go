package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/constants"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/model"
)

type MigrationAction string

const (
	ActionKept         MigrationAction = "kept"
	ActionMoved        MigrationAction = "moved"
	ActionWouldMove    MigrationAction = "would_move"
	ActionConflict     MigrationAction = "conflict"
	ActionUnresolvable MigrationAction = "unresolvable"
)

type MigrationEntry struct {
	From   string          `json:"from"`
	To     string          `json:"to,omitempty"`
	Action MigrationAction `json:"action"`
}

type MigrationReport struct {
	DryRun  bool             `json:"dryRun"`
	Entries []MigrationEntry `json:"entries"`
}

func (r MigrationReport) Count(a MigrationAction) int {
	n := 0
	for _, e := range r.Entries {
		if e.Action == a {
			n++
		}
	}
	return n
}

// MigrateCanonicalKeys memindahkan setiap UMKM yang key penyimpanannya
// berbeda dari slug kanoniknya (model.CanonicalSlug). Pemindahan = Set ke key
// baru lalu Delete key lama; key tujuan yang sudah terpakai dilewati sebagai
// conflict. Dengan dryRun tidak ada yang ditulis.
func (s *UMKMService) MigrateCanonicalKeys(ctx context.Context, dryRun bool) (*MigrationReport, error) {
	docs, err := s.store.List(ctx, constants.CollectionUMKM, docstore.Query{})
	if err != nil {
		return nil, s.fail("migrate list", "", err)
	}

	report := &MigrationReport{DryRun: dryRun, Entries: make([]MigrationEntry, 0, len(docs))}
	for _, doc := range docs {
		m := model.FromDocument(doc)
		target := model.CanonicalSlug(m)

		entry := MigrationEntry{From: doc.Key, To: target}
		switch {
		case target == "":
			entry.Action = ActionUnresolvable
		case target == doc.Key:
			entry.Action = ActionKept
		default:
			entry.Action, err = s.moveDocument(ctx, doc, target, dryRun)
			if err != nil {
				return report, err
			}
		}
		report.Entries = append(report.Entries, entry)
	}

	s.log.Info("canonical key migration done",
		zap.Bool("dry_run", dryRun),
		zap.Int("moved", report.Count(ActionMoved)+report.Count(ActionWouldMove)),
		zap.Int("conflicts", report.Count(ActionConflict)),
		zap.Int("unresolvable", report.Count(ActionUnresolvable)),
	)
	return report, nil
}

func (s *UMKMService) moveDocument(ctx context.Context, doc docstore.Document, target string, dryRun bool) (MigrationAction, error) {
	_, err := s.store.Get(ctx, constants.CollectionUMKM, target)
	switch {
	case err == nil:
		s.log.Warn("canonical key already taken", zap.String("from", doc.Key), zap.String("to", target))
		return ActionConflict, nil
	case errors.Is(err, docstore.ErrInvalidKey):
		return ActionUnresolvable, nil
	case !docstore.IsNotFound(err):
		return "", s.fail("migrate get", target, err)
	}
	if dryRun {
		return ActionWouldMove, nil
	}

	data := make(docstore.Fields, len(doc.Data)+2)
	for k, v := range doc.Data {
		data[k] = v
	}
	delete(data, model.FieldDocID)
	data[model.FieldSlug] = target
	data[model.FieldUpdatedAt] = docstore.ServerTimestamp

	if err := s.store.Set(ctx, constants.CollectionUMKM, target, data); err != nil {
		return "", s.fail("migrate set", target, err)
	}
	if err := s.store.Delete(ctx, constants.CollectionUMKM, doc.Key); err != nil {
		// both copies exist now; rerunning reports the old key as a conflict
		return "", s.fail("migrate delete", doc.Key, err)
	}
	s.log.Info("umkm re-keyed", zap.String("from", doc.Key), zap.String("to", target))
	return ActionMoved, nil
}
