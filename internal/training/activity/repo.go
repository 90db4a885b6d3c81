package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paceline/paceline/internal/telemetry/tracing"
	"github.com/paceline/paceline/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrActivityExists   = errors.New("activity already exists")
	ErrGoalNotFound     = errors.New("goal not found")
)

type ActivityParams struct {
	UserID string
	Type   Type
	From   *time.Time
	To     *time.Time
}

type ListParams struct {
	ActivityParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, a Activity) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO activity
				(user_id, type, date, duration_min, distance_km,
				avg_heart_rate, max_heart_rate, zones, pace_min_km, speed_kmh, best_pace_min_km,
				laps, track, hr_stream, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING id;`,
		a.UserID, a.Type, a.Date, a.DurationMin, a.DistanceKm,
		a.AvgHeartRate, a.MaxHeartRate, a.Zones, a.PaceMinKm, a.SpeedKmh, a.BestPaceMinKm,
		a.Laps, a.Track, a.HRStream, a.CreatedAt,
	)
	if err != nil {
		// watch app retries on flaky connections, same (user, date) comes in twice
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrActivityExists
		}
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrActivityExists
		}
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("activity.id", id))

	a.ID = id
	return &a, nil
}

func (r *Repo) Update(ctx context.Context, a *Activity) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", a.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE activity SET
				user_id = $1, type = $2, date = $3, duration_min = $4, distance_km = $5,
				avg_heart_rate = $6, max_heart_rate = $7, zones = $8,
				pace_min_km = $9, speed_kmh = $10, best_pace_min_km = $11,
				laps = $12, track = $13, hr_stream = $14
			WHERE id = $15;`,
		a.UserID, a.Type, a.Date, a.DurationMin, a.DistanceKm,
		a.AvgHeartRate, a.MaxHeartRate, a.Zones,
		a.PaceMinKm, a.SpeedKmh, a.BestPaceMinKm,
		a.Laps, a.Track, a.HRStream, a.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM activity WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, type, date, duration_min, distance_km,
				avg_heart_rate, max_heart_rate, zones, pace_min_km, speed_kmh, best_pace_min_km,
				laps, track, hr_stream, created_at
			FROM activity
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	activities, err := r.rows2activities(rows)
	if err != nil {
		return nil, err
	}

	if len(activities) != 1 {
		return nil, ErrActivityNotFound
	}

	return &activities[0], nil
}

// ListAll returns all activities matching the given filter, newest first.
func (r *Repo) ListAll(ctx context.Context, params ActivityParams) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	span.SetAttributes(attribute.String("type", string(params.Type)))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, type, date, duration_min, distance_km,
				avg_heart_rate, max_heart_rate, zones, pace_min_km, speed_kmh, best_pace_min_km,
				laps, track, hr_stream, created_at
			FROM activity
				WHERE ($1::text = '' OR user_id = $1)
				AND ($2::text = '' OR type = $2)
				AND ($3::timestamp IS NULL OR date >= $3)
				AND ($4::timestamp IS NULL OR date < $4)
			ORDER BY date DESC;`,
		params.UserID, string(params.Type),
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	activities, err := r.rows2activities(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2activities: %w", err)
	}
	return activities, nil
}

// List is like ListAll, but returns the specific PAGE of activities,
// i.e. is used for pagination.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Activity, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))
	span.SetAttributes(attribute.String("user_id", params.UserID))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.Count(ctx, params.ActivityParams)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}

	if countAll-offset < limit {
		offset = countAll - limit
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, type, date, duration_min, distance_km,
				avg_heart_rate, max_heart_rate, zones, pace_min_km, speed_kmh, best_pace_min_km,
				laps, track, hr_stream, created_at
			FROM activity
				WHERE ($1::text = '' OR user_id = $1)
				AND ($2::text = '' OR type = $2)
			ORDER BY date DESC
			LIMIT $3 OFFSET $4;`,
		params.UserID, string(params.Type),
		limit, offset,
	)
	if err != nil {
		return nil, -1, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, fmt.Errorf("rows: %w", err)
	}

	activities, err := r.rows2activities(rows)
	if err != nil {
		return nil, -1, fmt.Errorf("rows2activities: %w", err)
	}

	return activities, countAll, nil
}

func (r *Repo) Count(ctx context.Context, params ActivityParams) (count int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`
			SELECT COUNT(*) FROM activity
				WHERE ($1::text = '' OR user_id = $1)
				AND ($2::text = '' OR type = $2);`,
		params.UserID, string(params.Type),
	).Scan(&count)
	if err != nil {
		return -1, err
	}
	return count, nil
}

// SetGoal stores the race goal for a user, replacing a previous one.
func (r *Repo) SetGoal(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.setgoal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO goal (user_id, distance_km, target_time_min, event_date, created_at)
				VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id) DO UPDATE SET
				distance_km = EXCLUDED.distance_km,
				target_time_min = EXCLUDED.target_time_min,
				event_date = EXCLUDED.event_date,
				created_at = EXCLUDED.created_at
			RETURNING id;`,
		goal.UserID, goal.DistanceKm, goal.TargetTimeMin, goal.EventDate, goal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	goal.ID = id
	return &goal, nil
}

func (r *Repo) GetGoal(ctx context.Context, userID string) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.getgoal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	var goal Goal
	err = r.db.QueryRow(
		ctx,
		`
			SELECT id, user_id, distance_km, target_time_min, event_date, created_at
			FROM goal
			WHERE user_id = $1;`,
		userID,
	).Scan(
		&goal.ID, &goal.UserID, &goal.DistanceKm,
		&goal.TargetTimeMin, &goal.EventDate, &goal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	return &goal, nil
}

func (r *Repo) rows2activities(rows pgx.Rows) ([]Activity, error) {
	var activities []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Type, &a.Date, &a.DurationMin, &a.DistanceKm,
			&a.AvgHeartRate, &a.MaxHeartRate, &a.Zones, &a.PaceMinKm, &a.SpeedKmh, &a.BestPaceMinKm,
			&a.Laps, &a.Track, &a.HRStream, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, nil
}
