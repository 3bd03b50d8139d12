package store

import (
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/examdrill/ent/schema"
)

var (
	// QuizResultsTable holds the schema information for the "quiz_results" table.
	QuizResultsTable = tableFor("quiz_results", "quizresult", entschema.QuizResult{})

	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = tableFor("llm_request_events", "llmrequestevent", entschema.LLMRequestEvent{})

	// Tables holds every table managed by the store.
	Tables = []*schema.Table{
		QuizResultsTable,
		LLMRequestEventsTable,
	}
)

// tableFor lays out the table of an ent schema: an auto-increment id, the
// mixin fields, then the schema's own fields. Indexes are named
// <prefix>_<fields> as entc names them.
func tableFor(name, prefix string, s ent.Interface) *schema.Table {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			panic(fmt.Sprintf("store: %s.%s: %v", name, d.Name, d.Err))
		}
		t.AddColumn(column(d))
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(prefix+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t
}

func column(d *field.Descriptor) *schema.Column {
	c := &schema.Column{
		Name:     d.Name,
		Type:     d.Info.Type,
		Size:     int64(d.Size),
		Unique:   d.Unique,
		Nullable: d.Optional,
		Comment:  d.Comment,
	}
	// Function defaults such as time.Now are applied by the writer.
	switch d.Default.(type) {
	case string, bool, int, int64, float64:
		c.Default = d.Default
	}
	return c
}
