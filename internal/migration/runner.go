package migration

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// Runner applies and tracks Steps against one database.
type Runner struct {
	db    *gorm.DB
	steps []Step
	now   func() time.Time
}

// NewRunner creates a runner over the given steps, in history order.
func NewRunner(db *gorm.DB, steps []Step) *Runner {
	return &Runner{db: db, steps: steps, now: time.Now}
}

func (r *Runner) ensureTable(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}
	return nil
}

func (r *Runner) applied(ctx context.Context) (map[string]SchemaMigration, error) {
	var rows []SchemaMigration
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	out := make(map[string]SchemaMigration, len(rows))
	for _, row := range rows {
		out[row.Name] = row
	}
	return out, nil
}

// load validates the chain and the recorded history and returns the applied rows.
func (r *Runner) load(ctx context.Context) (map[string]SchemaMigration, error) {
	if err := ValidateChain(r.steps); err != nil {
		return nil, err
	}
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	applied, err := r.applied(ctx)
	if err != nil {
		return nil, err
	}

	// applied steps must be exactly a prefix of the chain
	prefix := 0
	for prefix < len(r.steps) {
		if _, ok := applied[r.steps[prefix].Name]; !ok {
			break
		}
		prefix++
	}
	if prefix != len(applied) {
		return nil, ErrInconsistentHistory
	}
	return applied, nil
}

func (r *Runner) index(name string) (int, error) {
	for i, s := range r.steps {
		if s.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownStep, name)
}

// Status lists every registered step with its applied state.
func (r *Runner) Status(ctx context.Context) ([]StepStatus, error) {
	applied, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]StepStatus, 0, len(r.steps))
	for _, s := range r.steps {
		st := StepStatus{Name: s.Name, DependsOn: s.DependsOn, Status: StatusPending}
		if row, ok := applied[s.Name]; ok {
			at := row.AppliedAt
			st.Status = StatusApplied
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

// Plan returns the pending steps Migrate would apply for target.
// An empty target means the end of the history.
func (r *Runner) Plan(ctx context.Context, target string) ([]Step, error) {
	applied, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	last := len(r.steps) - 1
	if target != "" {
		if last, err = r.index(target); err != nil {
			return nil, err
		}
	}

	var pending []Step
	for _, s := range r.steps[:last+1] {
		if _, ok := applied[s.Name]; !ok {
			pending = append(pending, s)
		}
	}
	return pending, nil
}

// Migrate applies pending steps in order up to and including target.
// Steps that are already applied are skipped. It returns how many steps ran.
func (r *Runner) Migrate(ctx context.Context, target string) (int, error) {
	pending, err := r.Plan(ctx, target)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		log.Println("no pending migrations")
		return 0, nil
	}

	for i, s := range pending {
		if err := r.run(ctx, s); err != nil {
			return i, err
		}
	}
	return len(pending), nil
}

// Apply applies a single named step. Re-applying an applied step is a no-op and
// reports false. The step's dependency must already be applied.
func (r *Runner) Apply(ctx context.Context, name string) (bool, error) {
	applied, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	i, err := r.index(name)
	if err != nil {
		return false, err
	}
	if _, ok := applied[name]; ok {
		log.Printf("migration %s already applied, skipping", name)
		return false, nil
	}

	s := r.steps[i]
	if s.DependsOn != "" {
		if _, ok := applied[s.DependsOn]; !ok {
			return false, fmt.Errorf("%w: %s needs %s", ErrDependencyNotApplied, s.Name, s.DependsOn)
		}
	}
	if err := r.run(ctx, s); err != nil {
		return false, err
	}
	return true, nil
}

// Rollback reverts the latest n applied steps, newest first, and returns their names.
func (r *Runner) Rollback(ctx context.Context, n int) ([]string, error) {
	applied, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if n > len(applied) {
		n = len(applied)
	}

	var reverted []string
	for i := len(applied) - 1; i >= len(applied)-n; i-- {
		s := r.steps[i]
		if s.Down == nil {
			return reverted, fmt.Errorf("%w: %s", ErrIrreversible, s.Name)
		}

		log.Printf("rolling back %s", s.Name)
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.Down(tx); err != nil {
				return err
			}
			return tx.Where("name = ?", s.Name).Delete(&SchemaMigration{}).Error
		})
		if err != nil {
			return reverted, fmt.Errorf("rollback %s: %w", s.Name, err)
		}
		reverted = append(reverted, s.Name)
	}
	return reverted, nil
}

// run applies one step and records it in the same transaction.
// DDL on MySQL commits implicitly, so a failure there may leave partial schema.
func (r *Runner) run(ctx context.Context, s Step) error {
	log.Printf("applying %s", s.Name)
	start := r.now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Up(tx); err != nil {
			return err
		}
		return tx.Create(&SchemaMigration{Name: s.Name, AppliedAt: r.now()}).Error
	})
	if err != nil {
		return fmt.Errorf("apply %s: %w", s.Name, err)
	}

	log.Printf("applied %s in %s", s.Name, r.now().Sub(start))
	return nil
}

// Validate checks that the registered steps form one linear history.
func (r *Runner) Validate() error {
	return ValidateChain(r.steps)
}
