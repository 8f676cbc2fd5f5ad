package repositories

import (
	"os"
	"regexp"
	"strings"
	"testing"
)

// The repositories hardcode column lists; the migration must define every
// column they reference or the statements fail at runtime with
// `column ... does not exist`. This keeps the two in sync.

// columns referenced in this package's SQL, per table
var requiredColumns = map[string][]string{
	"users": {
		"id", "display_name", "email", "password_hash", "refresh_token",
		"refresh_expires_at", "refresh_revoked", "telegram_chat_id", "created_at",
	},
	"user_profiles": {
		"id", "user_id", "level", "experience", "coins", "gems",
		"total_tasks_completed", "current_streak", "longest_streak",
		"last_completed_on", "created_at", "updated_at",
	},
	"task_templates": {
		"id", "created_by", "name", "description", "category", "frequency",
		"interval_days", "importance", "exp_reward", "area_health_impact",
		"tools_required", "tools_usage", "source", "created_at", "updated_at",
	},
	"user_task_assignments": {
		"id", "user_id", "template_id", "name_override", "description_override",
		"interval_override", "preferred_weekday", "active", "created_at", "updated_at",
	},
	"task_instances": {
		"id", "assignment_id", "due_date", "completed", "completed_at",
		"exp_earned", "area_health_restored", "used_tools", "created_at",
	},
	"home_areas": {
		"id", "user_id", "area_type", "name", "current_health", "max_health",
		"last_cleaned_at", "created_at",
	},
	"user_tools": {
		"id", "user_id", "tool_id", "name", "current_durability",
		"max_durability", "uses_count", "active", "created_at",
	},
	"legacy_tasks": {
		"id", "user_id", "title", "category", "due_date", "completed", "created_at",
	},
}

var createTableRe = regexp.MustCompile(`(?s)CREATE TABLE (\w+) \((.*?)\);`)

func parseMigrationColumns(t *testing.T) map[string]map[string]bool {
	t.Helper()
	raw, err := os.ReadFile("../../migrations/001_init.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}

	tables := map[string]map[string]bool{}
	for _, m := range createTableRe.FindAllStringSubmatch(string(raw), -1) {
		name, body := m[1], m[2]
		cols := map[string]bool{}
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "--") {
				continue
			}
			first := strings.ToLower(strings.Fields(line)[0])
			switch first {
			case "unique", "primary", "foreign", "constraint", "check":
				continue
			}
			cols[first] = true
		}
		tables[name] = cols
	}
	return tables
}

func TestMigrationDefinesEveryColumnTheRepositoriesUse(t *testing.T) {
	tables := parseMigrationColumns(t)

	for table, cols := range requiredColumns {
		defined, ok := tables[table]
		if !ok {
			t.Errorf("migration does not create table %q", table)
			continue
		}
		for _, col := range cols {
			if !defined[col] {
				t.Errorf("table %q: column %q used in SQL but missing from migration", table, col)
			}
		}
	}
}

func TestMigrationKeepsInstanceUniquenessConstraint(t *testing.T) {
	raw, err := os.ReadFile("../../migrations/001_init.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	// StoreIfAbsent's ON CONFLICT target must exist
	if !strings.Contains(string(raw), "UNIQUE (assignment_id, due_date)") {
		t.Fatalf("task_instances must keep the UNIQUE (assignment_id, due_date) constraint")
	}
}
