package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/clanhub/hunt-stats/internal/domain/hunt"
	"github.com/clanhub/hunt-stats/internal/platform/logging"
)

// ErrStoreMissing marks a load against a canonical file that does not exist.
var ErrStoreMissing = crerr.New("canonical store file missing")

// huntTotalsKey shares the top-level namespace with team names; hunt team
// names never collide with it.
const huntTotalsKey = "hunt_totals"

// Repository persists the canonical store as one JSON document on disk.
// Writes go through a temp file and rename so a failed run never leaves a
// truncated store behind.
type Repository struct {
	path   string
	logger *logging.Logger
}

func NewRepository(path string, logger *logging.Logger) *Repository {
	if logger == nil {
		logger = logging.Default()
	}
	return &Repository{path: path, logger: logger}
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Load(ctx context.Context) (*hunt.Store, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, crerr.Wrapf(ErrStoreMissing, "path %s", r.path)
		}
		return nil, fmt.Errorf("read canonical store: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := sonic.ConfigStd.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode canonical store %s: %w", r.path, err)
	}

	store := &hunt.Store{Teams: make(map[string]*hunt.Team, len(raw))}

	teamNames := make([]string, 0, len(raw))
	for key := range raw {
		if key == huntTotalsKey {
			continue
		}
		teamNames = append(teamNames, key)
	}
	sort.Strings(teamNames)

	for _, name := range teamNames {
		var doc teamDoc
		if err := sonic.ConfigStd.Unmarshal(raw[name], &doc); err != nil {
			return nil, fmt.Errorf("decode team %q: %w", name, err)
		}

		identities := make([]string, 0, len(doc.Players))
		for identity := range doc.Players {
			identities = append(identities, identity)
		}
		sort.Strings(identities)

		store.Teams[name] = fromTeamDoc(name, doc, identities)
		store.TeamOrder = append(store.TeamOrder, name)
	}

	if rawTotals, ok := raw[huntTotalsKey]; ok {
		var doc huntTotalsDoc
		if err := sonic.ConfigStd.Unmarshal(rawTotals, &doc); err != nil {
			return nil, fmt.Errorf("decode hunt totals: %w", err)
		}
		store.HuntTotals = fromHuntTotalsDoc(doc)
	}

	r.logger.DebugContext(ctx, "canonical store loaded", "path", r.path, "teams", len(store.Teams))
	return store, nil
}

func (r *Repository) Save(ctx context.Context, store *hunt.Store) error {
	doc := make(map[string]any, len(store.Teams)+1)
	for name, team := range store.Teams {
		doc[name] = toTeamDoc(team)
	}
	doc[huntTotalsKey] = toHuntTotalsDoc(store.HuntTotals)

	// ConfigStd sorts object keys, so consecutive saves of an unchanged
	// store are byte-identical.
	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode canonical store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".hunt_metrics-*.json")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp store file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace canonical store: %w", err)
	}

	r.logger.InfoContext(ctx, "canonical store saved", "path", r.path, "bytes", len(data))
	return nil
}
