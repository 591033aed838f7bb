package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens the database, applies the schema and returns the store.
func New(ctx context.Context, dsn string) (store.Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB constructs a Postgres store backed by an existing connection.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users       { return &users{db: s.db} }
func (s *pgStore) Contexts() store.Contexts { return &contexts{db: s.db} }
func (s *pgStore) Sources() store.Sources   { return &sources{db: s.db} }
func (s *pgStore) Thoughts() store.Thoughts { return &thoughts{db: s.db} }
func (s *pgStore) Notes() store.Notes       { return &notes{db: s.db} }
func (s *pgStore) Moments() store.Moments   { return &moments{db: s.db} }
func (s *pgStore) Learning() store.Learning { return &learning{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	now := time.Now().UTC()
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (user_id, email, display_name, time_zone, status, creation_time)
        VALUES ($1,$2,$3,$4,'ACTIVE',$5)
    `, m.UserID, m.Email, m.DisplayName, m.TimeZone, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.Status = "ACTIVE"
	out.CreationTime = now
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, time_zone, status, creation_time
        FROM users WHERE user_id=$1
    `, userID)
	if err := row.Scan(&out.UserID, &out.Email, &out.DisplayName, &out.TimeZone, &out.Status, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

// --- Contexts ---

type contexts struct{ db *sql.DB }

func (c *contexts) Create(ctx context.Context, m *model.Context) (*model.Context, error) {
	id := m.ContextID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO contexts (user_id, context_id, name, description, creation_time)
        VALUES ($1,$2,$3,$4,$5)
    `, m.UserID, id, m.Name, m.Description, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ContextID = id
	out.CreationTime = now
	return &out, nil
}

func (c *contexts) GetByID(ctx context.Context, userID, contextID string) (*model.Context, error) {
	var out model.Context
	row := c.db.QueryRowContext(ctx, `
        SELECT user_id, context_id, name, description, creation_time
        FROM contexts WHERE user_id=$1 AND context_id=$2
    `, userID, contextID)
	if err := row.Scan(&out.UserID, &out.ContextID, &out.Name, &out.Description, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (c *contexts) List(ctx context.Context, userID string) ([]*model.Context, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT user_id, context_id, name, description, creation_time
        FROM contexts WHERE user_id=$1 ORDER BY creation_time ASC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Context
	for rows.Next() {
		var m model.Context
		if err := rows.Scan(&m.UserID, &m.ContextID, &m.Name, &m.Description, &m.CreationTime); err != nil {
			return nil, err
		}
		res = append(res, &m)
	}
	return res, rows.Err()
}

func (c *contexts) Delete(ctx context.Context, userID, contextID string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM contexts WHERE user_id=$1 AND context_id=$2`, userID, contextID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// --- Sources ---

type sources struct{ db *sql.DB }

func (s *sources) Create(ctx context.Context, m *model.Source) (*model.Source, error) {
	id := m.SourceID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO sources (user_id, source_id, kind, title, author, url, creation_time)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, m.UserID, id, m.Kind, m.Title, m.Author, m.URL, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.SourceID = id
	out.CreationTime = now
	return &out, nil
}

func (s *sources) GetByID(ctx context.Context, userID, sourceID string) (*model.Source, error) {
	var out model.Source
	row := s.db.QueryRowContext(ctx, `
        SELECT user_id, source_id, kind, title, author, url, creation_time
        FROM sources WHERE user_id=$1 AND source_id=$2
    `, userID, sourceID)
	if err := row.Scan(&out.UserID, &out.SourceID, &out.Kind, &out.Title, &out.Author, &out.URL, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (s *sources) List(ctx context.Context, userID string) ([]*model.Source, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, source_id, kind, title, author, url, creation_time
        FROM sources WHERE user_id=$1 ORDER BY creation_time ASC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Source
	for rows.Next() {
		var m model.Source
		if err := rows.Scan(&m.UserID, &m.SourceID, &m.Kind, &m.Title, &m.Author, &m.URL, &m.CreationTime); err != nil {
			return nil, err
		}
		res = append(res, &m)
	}
	return res, rows.Err()
}

func (s *sources) Delete(ctx context.Context, userID, sourceID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE user_id=$1 AND source_id=$2`, userID, sourceID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// --- Thoughts ---

type thoughts struct{ db *sql.DB }

const thoughtCols = `user_id, thought_id, context_id, source_id, content, application_count, on_active_list, last_applied_time, creation_time`

func scanThought(row interface{ Scan(...any) error }) (*model.Thought, error) {
	var m model.Thought
	if err := row.Scan(&m.UserID, &m.ThoughtID, &m.ContextID, &m.SourceID, &m.Content,
		&m.ApplicationCount, &m.OnActiveList, &m.LastAppliedTime, &m.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &m, nil
}

func (t *thoughts) Create(ctx context.Context, m *model.Thought) (*model.Thought, error) {
	id := m.ThoughtID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := t.db.ExecContext(ctx, `
        INSERT INTO thoughts (user_id, thought_id, context_id, source_id, content, application_count, on_active_list, creation_time)
        VALUES ($1,$2,$3,$4,$5,0,FALSE,$6)
    `, m.UserID, id, m.ContextID, m.SourceID, m.Content, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ThoughtID = id
	out.ApplicationCount = 0
	out.OnActiveList = false
	out.CreationTime = now
	return &out, nil
}

func (t *thoughts) GetByID(ctx context.Context, userID, thoughtID string) (*model.Thought, error) {
	row := t.db.QueryRowContext(ctx, `
        SELECT `+thoughtCols+` FROM thoughts WHERE user_id=$1 AND thought_id=$2
    `, userID, thoughtID)
	return scanThought(row)
}

func (t *thoughts) List(ctx context.Context, userID string) ([]*model.Thought, error) {
	return t.list(ctx, `SELECT `+thoughtCols+` FROM thoughts WHERE user_id=$1 ORDER BY creation_time ASC, thought_id ASC`, userID)
}

func (t *thoughts) ListActive(ctx context.Context, userID string) ([]*model.Thought, error) {
	return t.list(ctx, `SELECT `+thoughtCols+` FROM thoughts WHERE user_id=$1 AND on_active_list ORDER BY creation_time ASC, thought_id ASC`, userID)
}

func (t *thoughts) list(ctx context.Context, query string, args ...any) ([]*model.Thought, error) {
	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Thought
	for rows.Next() {
		m, err := scanThought(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (t *thoughts) Delete(ctx context.Context, userID, thoughtID string) error {
	res, err := t.db.ExecContext(ctx, `DELETE FROM thoughts WHERE user_id=$1 AND thought_id=$2`, userID, thoughtID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (t *thoughts) RecordApplication(ctx context.Context, userID, thoughtID string, at time.Time) (*model.Thought, error) {
	res, err := t.db.ExecContext(ctx, `
        UPDATE thoughts SET application_count = application_count + 1, last_applied_time = $3
        WHERE user_id=$1 AND thought_id=$2
    `, userID, thoughtID, at.UTC())
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return t.GetByID(ctx, userID, thoughtID)
}

func (t *thoughts) SetOnActiveList(ctx context.Context, userID, thoughtID string, on bool) error {
	res, err := t.db.ExecContext(ctx, `
        UPDATE thoughts SET on_active_list=$3 WHERE user_id=$1 AND thought_id=$2
    `, userID, thoughtID, on)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (t *thoughts) CountActive(ctx context.Context, userID string) (int, error) {
	var n int
	row := t.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM thoughts WHERE user_id=$1 AND on_active_list`, userID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (t *thoughts) LeastRecentlyApplied(ctx context.Context, userID string) (*model.Thought, error) {
	row := t.db.QueryRowContext(ctx, `
        SELECT `+thoughtCols+` FROM thoughts
        WHERE user_id=$1 AND NOT on_active_list
        ORDER BY last_applied_time ASC NULLS FIRST, creation_time ASC
        LIMIT 1
    `, userID)
	return scanThought(row)
}

// --- Notes ---

type notes struct{ db *sql.DB }

func (n *notes) Create(ctx context.Context, m *model.Note) (*model.Note, error) {
	id := m.NoteID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := n.db.ExecContext(ctx, `
        INSERT INTO notes (user_id, note_id, source_id, title, body, creation_time, update_time)
        VALUES ($1,$2,$3,$4,$5,$6,$6)
    `, m.UserID, id, m.SourceID, m.Title, m.Body, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.NoteID = id
	out.CreationTime = now
	out.UpdateTime = now
	return &out, nil
}

func (n *notes) GetByID(ctx context.Context, userID, noteID string) (*model.Note, error) {
	var out model.Note
	row := n.db.QueryRowContext(ctx, `
        SELECT user_id, note_id, source_id, title, body, creation_time, update_time
        FROM notes WHERE user_id=$1 AND note_id=$2
    `, userID, noteID)
	if err := row.Scan(&out.UserID, &out.NoteID, &out.SourceID, &out.Title, &out.Body, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (n *notes) List(ctx context.Context, userID string) ([]*model.Note, error) {
	rows, err := n.db.QueryContext(ctx, `
        SELECT user_id, note_id, source_id, title, body, creation_time, update_time
        FROM notes WHERE user_id=$1 ORDER BY update_time DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Note
	for rows.Next() {
		var m model.Note
		if err := rows.Scan(&m.UserID, &m.NoteID, &m.SourceID, &m.Title, &m.Body, &m.CreationTime, &m.UpdateTime); err != nil {
			return nil, err
		}
		res = append(res, &m)
	}
	return res, rows.Err()
}

func (n *notes) Update(ctx context.Context, m *model.Note) (*model.Note, error) {
	now := time.Now().UTC()
	res, err := n.db.ExecContext(ctx, `
        UPDATE notes SET title=$3, body=$4, source_id=$5, update_time=$6
        WHERE user_id=$1 AND note_id=$2
    `, m.UserID, m.NoteID, m.Title, m.Body, m.SourceID, now)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return n.GetByID(ctx, m.UserID, m.NoteID)
}

func (n *notes) Delete(ctx context.Context, userID, noteID string) error {
	res, err := n.db.ExecContext(ctx, `DELETE FROM notes WHERE user_id=$1 AND note_id=$2`, userID, noteID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// --- Moments ---

type moments struct{ db *sql.DB }

func (mo *moments) Create(ctx context.Context, m *model.Moment) (*model.Moment, error) {
	id := m.MomentID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()

	tx, err := mo.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO moments (user_id, moment_id, description, calendar_event_title, calendar_event_start, user_context, status, creation_time)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, m.UserID, id, m.Description, m.CalendarEventTitle, m.CalendarEventStart, m.UserContext, m.Status, now)
	if err != nil {
		return nil, err
	}
	if err := insertMatches(ctx, tx, m.UserID, id, m.MatchedThoughts); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	out := *m
	out.MomentID = id
	out.CreationTime = now
	for _, mt := range out.MatchedThoughts {
		mt.MomentID = id
	}
	return &out, nil
}

func insertMatches(ctx context.Context, tx *sql.Tx, userID, momentID string, matches []*model.MomentThought) error {
	for i, mt := range matches {
		terms, err := json.Marshal(mt.MatchedTerms)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO moment_thoughts (user_id, moment_id, thought_id, content, relevance_score, relevance_reason, matched_terms, match_source, was_reviewed, was_helpful, rank_position)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,FALSE,NULL,$9)
        `, userID, momentID, mt.ThoughtID, mt.Content, mt.RelevanceScore, mt.RelevanceReason, string(terms), mt.MatchSource, i)
		if err != nil {
			return err
		}
	}
	return nil
}

func (mo *moments) GetByID(ctx context.Context, userID, momentID string) (*model.Moment, error) {
	var out model.Moment
	row := mo.db.QueryRowContext(ctx, `
        SELECT user_id, moment_id, description, calendar_event_title, calendar_event_start, user_context, status, creation_time
        FROM moments WHERE user_id=$1 AND moment_id=$2
    `, userID, momentID)
	if err := row.Scan(&out.UserID, &out.MomentID, &out.Description, &out.CalendarEventTitle,
		&out.CalendarEventStart, &out.UserContext, &out.Status, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	matches, err := mo.matchesFor(ctx, userID, momentID)
	if err != nil {
		return nil, err
	}
	out.MatchedThoughts = matches
	return &out, nil
}

func (mo *moments) List(ctx context.Context, userID string) ([]*model.Moment, error) {
	rows, err := mo.db.QueryContext(ctx, `
        SELECT user_id, moment_id, description, calendar_event_title, calendar_event_start, user_context, status, creation_time
        FROM moments WHERE user_id=$1 ORDER BY creation_time DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Moment
	for rows.Next() {
		var m model.Moment
		if err := rows.Scan(&m.UserID, &m.MomentID, &m.Description, &m.CalendarEventTitle,
			&m.CalendarEventStart, &m.UserContext, &m.Status, &m.CreationTime); err != nil {
			return nil, err
		}
		res = append(res, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range res {
		matches, err := mo.matchesFor(ctx, userID, m.MomentID)
		if err != nil {
			return nil, err
		}
		m.MatchedThoughts = matches
	}
	return res, nil
}

func (mo *moments) matchesFor(ctx context.Context, userID, momentID string) ([]*model.MomentThought, error) {
	rows, err := mo.db.QueryContext(ctx, `
        SELECT moment_id, thought_id, content, relevance_score, relevance_reason, matched_terms, match_source, was_reviewed, was_helpful
        FROM moment_thoughts WHERE user_id=$1 AND moment_id=$2 ORDER BY rank_position ASC
    `, userID, momentID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := []*model.MomentThought{}
	for rows.Next() {
		mt, err := scanMomentThought(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, mt)
	}
	return res, rows.Err()
}

func scanMomentThought(row interface{ Scan(...any) error }) (*model.MomentThought, error) {
	var mt model.MomentThought
	var terms string
	if err := row.Scan(&mt.MomentID, &mt.ThoughtID, &mt.Content, &mt.RelevanceScore,
		&mt.RelevanceReason, &terms, &mt.MatchSource, &mt.WasReviewed, &mt.WasHelpful); err != nil {
		return nil, mapNotFound(err)
	}
	if terms != "" {
		if err := json.Unmarshal([]byte(terms), &mt.MatchedTerms); err != nil {
			return nil, err
		}
	}
	return &mt, nil
}

func (mo *moments) SetUserContext(ctx context.Context, userID, momentID, userContext, status string) error {
	res, err := mo.db.ExecContext(ctx, `
        UPDATE moments SET user_context=$3, status=$4 WHERE user_id=$1 AND moment_id=$2
    `, userID, momentID, userContext, status)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (mo *moments) ReplaceMatches(ctx context.Context, userID, momentID string, matches []*model.MomentThought) error {
	tx, err := mo.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM moment_thoughts WHERE user_id=$1 AND moment_id=$2`, userID, momentID); err != nil {
		return err
	}
	if err := insertMatches(ctx, tx, userID, momentID, matches); err != nil {
		return err
	}
	return tx.Commit()
}

func (mo *moments) Review(ctx context.Context, userID, momentID, thoughtID string, helpful *bool) (*model.MomentThought, error) {
	// was_reviewed only transitions to TRUE; was_helpful only transitions to
	// FALSE. The CASE guard keeps a prior FALSE sticky against a later
	// helpful=true submission, so duplicate clicks are idempotent.
	var err error
	switch {
	case helpful == nil:
		_, err = mo.db.ExecContext(ctx, `
            UPDATE moment_thoughts SET was_reviewed=TRUE
            WHERE user_id=$1 AND moment_id=$2 AND thought_id=$3
        `, userID, momentID, thoughtID)
	case *helpful:
		_, err = mo.db.ExecContext(ctx, `
            UPDATE moment_thoughts SET was_reviewed=TRUE,
                was_helpful = CASE WHEN was_helpful = FALSE THEN FALSE ELSE TRUE END
            WHERE user_id=$1 AND moment_id=$2 AND thought_id=$3
        `, userID, momentID, thoughtID)
	default:
		_, err = mo.db.ExecContext(ctx, `
            UPDATE moment_thoughts SET was_reviewed=TRUE, was_helpful=FALSE
            WHERE user_id=$1 AND moment_id=$2 AND thought_id=$3
        `, userID, momentID, thoughtID)
	}
	if err != nil {
		return nil, err
	}

	row := mo.db.QueryRowContext(ctx, `
        SELECT moment_id, thought_id, content, relevance_score, relevance_reason, matched_terms, match_source, was_reviewed, was_helpful
        FROM moment_thoughts WHERE user_id=$1 AND moment_id=$2 AND thought_id=$3
    `, userID, momentID, thoughtID)
	return scanMomentThought(row)
}

// --- Learning ---

type learning struct{ db *sql.DB }

func (l *learning) AdjustWeight(ctx context.Context, userID, thoughtID, keyword string, delta float64) error {
	_, err := l.db.ExecContext(ctx, `
        INSERT INTO learning_weights (user_id, thought_id, keyword, weight)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (user_id, thought_id, keyword)
        DO UPDATE SET weight = learning_weights.weight + EXCLUDED.weight
    `, userID, thoughtID, keyword, delta)
	return err
}

func (l *learning) WeightsForUser(ctx context.Context, userID string) (map[string]map[string]float64, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT thought_id, keyword, weight FROM learning_weights WHERE user_id=$1
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := map[string]map[string]float64{}
	for rows.Next() {
		var thoughtID, keyword string
		var w float64
		if err := rows.Scan(&thoughtID, &keyword, &w); err != nil {
			return nil, err
		}
		if out[thoughtID] == nil {
			out[thoughtID] = map[string]float64{}
		}
		out[thoughtID][keyword] = w
	}
	return out, rows.Err()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
