package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "skillscan_user")
	password := getEnv("DB_PASSWORD", "skillscan_password")
	dbname := getEnv("DB_NAME", "skillscan")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		xp INT NOT NULL DEFAULT 0,
		level INT NOT NULL DEFAULT 1,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS questions (
		id                       VARCHAR(64) PRIMARY KEY,
		subject                  VARCHAR(100) NOT NULL,
		topic                    VARCHAR(100) NOT NULL DEFAULT '',
		complexity               VARCHAR(20) NOT NULL DEFAULT 'application',
		grade_level              VARCHAR(20) NOT NULL DEFAULT 'grade_8',
		requires_prior_knowledge BOOLEAN NOT NULL DEFAULT FALSE,
		multi_step               BOOLEAN NOT NULL DEFAULT FALSE,
		abstract_reasoning       BOOLEAN NOT NULL DEFAULT FALSE,
		question_text            TEXT NOT NULL,
		question_type            VARCHAR(30) NOT NULL DEFAULT 'multiple_choice',
		options                  TEXT[],
		correct_answer           TEXT NOT NULL,
		explanation              TEXT NOT NULL DEFAULT '',
		points                   INT NOT NULL DEFAULT 10,
		estimated_time_seconds   INT NOT NULL DEFAULT 30,
		think_aloud_prompts      TEXT[],
		created_at               TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_questions_subject ON questions(subject);
	CREATE INDEX IF NOT EXISTS idx_questions_subject_grade ON questions(subject, grade_level);

	CREATE TABLE IF NOT EXISTS assessment_sessions (
		id                 VARCHAR(64) PRIMARY KEY,
		user_id            BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject            VARCHAR(100) NOT NULL,
		session_type       VARCHAR(20) NOT NULL DEFAULT 'diagnostic',
		status             VARCHAR(20) NOT NULL DEFAULT 'in_progress',
		ability            DOUBLE PRECISION NOT NULL DEFAULT 0.5,
		asked_question_ids TEXT[],
		started_at         TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		completed_at       TIMESTAMP WITH TIME ZONE
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user ON assessment_sessions(user_id, status);

	CREATE TABLE IF NOT EXISTS session_responses (
		id                    BIGSERIAL PRIMARY KEY,
		session_id            VARCHAR(64) NOT NULL REFERENCES assessment_sessions(id) ON DELETE CASCADE,
		question_id           VARCHAR(64) NOT NULL,
		is_correct            BOOLEAN NOT NULL,
		response_time_seconds DOUBLE PRECISION NOT NULL DEFAULT 0,
		question_difficulty   DOUBLE PRECISION NOT NULL DEFAULT 0.5,
		reasoning_quality     DOUBLE PRECISION,
		answered_at           TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_responses_session ON session_responses(session_id);

	CREATE TABLE IF NOT EXISTS assistance_events (
		id              BIGSERIAL PRIMARY KEY,
		session_id      VARCHAR(64) NOT NULL REFERENCES assessment_sessions(id) ON DELETE CASCADE,
		question_id     VARCHAR(64) NOT NULL,
		assistance_type VARCHAR(50) NOT NULL,
		content         TEXT,
		recorded_at     TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_assistance_session ON assistance_events(session_id);

	CREATE TABLE IF NOT EXISTS user_subject_abilities (
		id                 BIGSERIAL PRIMARY KEY,
		user_id            BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject            VARCHAR(100) NOT NULL,
		ability            DOUBLE PRECISION NOT NULL DEFAULT 0.5 CHECK (ability >= 0 AND ability <= 1),
		questions_answered INT NOT NULL DEFAULT 0,
		questions_correct  INT NOT NULL DEFAULT 0,
		last_updated       TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, subject)
	);

	CREATE INDEX IF NOT EXISTS idx_abilities_user ON user_subject_abilities(user_id);

	CREATE TABLE IF NOT EXISTS xp_events (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		event_type  VARCHAR(50) NOT NULL,
		xp_amount   INT NOT NULL,
		metadata    JSONB,
		created_at  TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_xp_events_user ON xp_events(user_id, created_at);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Idempotent column additions for databases created before these fields
	alterStatements := []string{
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS xp INT NOT NULL DEFAULT 0`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS level INT NOT NULL DEFAULT 1`,
		`ALTER TABLE questions ADD COLUMN IF NOT EXISTS think_aloud_prompts TEXT[]`,
		`ALTER TABLE session_responses ADD COLUMN IF NOT EXISTS reasoning_quality DOUBLE PRECISION`,
	}
	for _, stmt := range alterStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("alter table failed: %w", err)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
