package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	llmRequestEventsTable = "llm_request_events"
	answerEventsTable     = "answer_events"
	sessionEventsTable    = "session_events"
	eventSequenceTable    = "event_sequence"
)

// Every event table starts with the same id, sequence and timestamp columns.
func eventColumns(fields ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString, Default: ""},
	}, fields...)
}

var (
	// LLMRequestEventsColumns holds the columns for the "llm_request_events" table.
	LLMRequestEventsColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = &schema.Table{
		Name:       llmRequestEventsTable,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{LLMRequestEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMRequestEventsColumns[6]}},
		},
	}

	// AnswerEventsColumns holds the columns for the "answer_events" table.
	AnswerEventsColumns = eventColumns(
		&schema.Column{Name: "section", Type: field.TypeInt},
		&schema.Column{Name: "number", Type: field.TypeInt},
		&schema.Column{Name: "tier", Type: field.TypeInt},
		&schema.Column{Name: "question_text", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "correct_answer", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "learner_answer", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "status", Type: field.TypeString},
		&schema.Column{Name: "counted", Type: field.TypeBool},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64, Default: 0},
	)
	// AnswerEventsTable holds the schema information for the "answer_events" table.
	AnswerEventsTable = &schema.Table{
		Name:       answerEventsTable,
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{AnswerEventsColumns[3]}},
		},
	}

	// SessionEventsColumns holds the columns for the "session_events" table.
	SessionEventsColumns = eventColumns(
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "age", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "section", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "tier", Type: field.TypeInt},
		&schema.Column{Name: "score", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "total", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "ended_early", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "interrupted", Type: field.TypeBool, Default: false},
	)
	// SessionEventsTable holds the schema information for the "session_events" table.
	SessionEventsTable = &schema.Table{
		Name:       sessionEventsTable,
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{SessionEventsColumns[3]}},
		},
	}

	eventSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64},
	}
	// EventSequenceTable holds the shared sequence counter row.
	EventSequenceTable = &schema.Table{
		Name:       eventSequenceTable,
		Columns:    eventSequenceColumns,
		PrimaryKey: []*schema.Column{eventSequenceColumns[0]},
	}

	// Tables lists every journal table.
	Tables = []*schema.Table{
		LLMRequestEventsTable,
		AnswerEventsTable,
		SessionEventsTable,
		EventSequenceTable,
	}
)

// migrate creates missing tables and columns. Existing data is left alone.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables...)
}
