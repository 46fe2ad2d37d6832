// Package roster holds the static list of known site identities. The
// roster is loaded once at startup and never mutated.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sitehub-ops/checklist-api/internal/models"
)

type Roster struct {
	identities []models.Identity
}

// rosterEntry is the on-disk shape of one roster member. Role accepts
// the historical spellings; they are normalized here, at the boundary,
// so the rest of the service only ever sees the closed enum.
type rosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	PIN  string `json:"pin"`
}

// New builds a roster from already-normalized identities.
func New(identities []models.Identity) *Roster {
	return &Roster{identities: identities}
}

// Load reads a roster JSON file and normalizes roles. Entries with an
// unknown role, or without an id, name, or pin, are rejected.
func Load(path string) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var entries []rosterEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("roster file %s contains no entries", path)
	}

	identities := make([]models.Identity, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Name == "" || e.PIN == "" {
			return nil, fmt.Errorf("roster entry %q is missing id, name, or pin", e.ID)
		}
		role, ok := models.NormalizeRole(e.Role)
		if !ok {
			return nil, fmt.Errorf("roster entry %q has unknown role %q", e.ID, e.Role)
		}
		key := strings.ToLower(e.ID)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate roster id %q", e.ID)
		}
		seen[key] = struct{}{}

		identities = append(identities, models.Identity{
			ID:         e.ID,
			Name:       e.Name,
			Role:       role,
			Credential: e.PIN,
		})
	}

	return &Roster{identities: identities}, nil
}

// Default returns the built-in site roster, used when no roster file is
// configured.
func Default() *Roster {
	return New([]models.Identity{
		{ID: "oliver", Name: "Oliver", Role: models.RoleWorker, Credential: "1111"},
		{ID: "emil", Name: "Emil", Role: models.RoleWorker, Credential: "2222"},
		{ID: "william", Name: "William", Role: models.RoleWorker, Credential: "3333"},
		{ID: "martin", Name: "Martin", Role: models.RoleCoordinator, Credential: "4444"},
		{ID: "catharina", Name: "Catharina", Role: models.RoleCoordinator, Credential: "5555"},
		{ID: "jon", Name: "Jon", Role: models.RoleLead, Credential: "9999"},
	})
}

// FindByIdentifier matches an identity by id or name, case-insensitively.
func (r *Roster) FindByIdentifier(identifier string) (models.Identity, bool) {
	needle := strings.ToLower(strings.TrimSpace(identifier))
	for _, id := range r.identities {
		if strings.ToLower(id.ID) == needle || strings.ToLower(id.Name) == needle {
			return id, true
		}
	}
	return models.Identity{}, false
}

// FindByID matches an identity by id only, case-insensitively. Used to
// resolve session identity ids back to roster members.
func (r *Roster) FindByID(id string) (models.Identity, bool) {
	needle := strings.ToLower(id)
	for _, ident := range r.identities {
		if strings.ToLower(ident.ID) == needle {
			return ident, true
		}
	}
	return models.Identity{}, false
}

// Identities returns the roster members in declaration order.
func (r *Roster) Identities() []models.Identity {
	return r.identities
}
