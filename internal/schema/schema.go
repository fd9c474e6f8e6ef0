// Package schema declares the graph's uniqueness constraints.
package schema

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/apperrors"
	"github.com/cbnu/campus-ontology/internal/graphstore"
	"github.com/cbnu/campus-ontology/internal/ontology"
)

type Manager struct {
	labels []*ontology.Label
	log    zerolog.Logger
}

// NewManager creates a Manager covering every ontology label.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		labels: ontology.Labels(),
		log:    log.With().Str("component", "schema").Logger(),
	}
}

// Ensure declares one uniqueness constraint per label on its key. Running it
// against a store that already has the constraints changes nothing.
func (m *Manager) Ensure(ctx context.Context, session graphstore.Session) error {
	for _, label := range m.labels {
		if err := session.DeclareUniqueConstraint(ctx, label); err != nil {
			return apperrors.NewConstraintError(label.Name(), label.Key(), err)
		}
		m.log.Debug().
			Str("label", label.Name()).
			Str("constraint", label.ConstraintName()).
			Msg("Constraint ensured")
	}
	m.log.Info().Int("constraints", len(m.labels)).Msg("Schema constraints in place")
	return nil
}
