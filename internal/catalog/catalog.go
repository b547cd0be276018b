// Package catalog is the fixed set of task manager statements.
//
// Each builder returns the SQL template and its positional arguments
// without touching a database, so the catalog can be checked in
// isolation. Actions wires the builders to the numbered menu.
package catalog

// Kind says how a Statement must be executed and displayed.
type Kind int

const (
	// Read statements return rows to print.
	Read Kind = iota
	// Write statements run in a transaction and report rows affected.
	Write
	// WriteReturning is a Write whose RETURNING id is reported.
	WriteReturning
)

func (k Kind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	case WriteReturning:
		return "write-returning"
	default:
		return "unknown"
	}
}

// Statement is a parameterized SQL statement ready to execute.
type Statement struct {
	Name string
	SQL  string
	Args []any
	Kind Kind
}

// IsWrite reports whether the statement must be committed.
func (s Statement) IsWrite() bool {
	return s.Kind == Write || s.Kind == WriteReturning
}

// DefaultStatus is used when a new task is inserted without a status.
const DefaultStatus = "new"

func TasksByUser(userID int) Statement {
	return Statement{
		Name: "tasks_by_user",
		SQL:  `SELECT * FROM tasks WHERE user_id = $1 ORDER BY id;`,
		Args: []any{userID},
		Kind: Read,
	}
}

func TasksByStatusName(name string) Statement {
	return Statement{
		Name: "tasks_by_status_name",
		SQL: `SELECT * FROM tasks
WHERE status_id = (SELECT id FROM status WHERE name = $1)
ORDER BY id;`,
		Args: []any{name},
		Kind: Read,
	}
}

// UpdateTaskStatus moves a task to the status with the given name. An
// unknown name resolves to NULL and is rejected by the NOT NULL constraint.
func UpdateTaskStatus(taskID int, statusName string) Statement {
	return Statement{
		Name: "update_task_status",
		SQL: `UPDATE tasks
   SET status_id = (SELECT id FROM status WHERE name = $1)
 WHERE id = $2;`,
		Args: []any{statusName, taskID},
		Kind: Write,
	}
}

func UsersWithoutTasks() Statement {
	return Statement{
		Name: "users_without_tasks",
		SQL: `SELECT u.*
  FROM users u
 WHERE u.id NOT IN (SELECT DISTINCT user_id FROM tasks)
 ORDER BY u.id;`,
		Args: []any{},
		Kind: Read,
	}
}

// InsertTaskForUser adds a task; a nil description is stored as NULL and
// an empty status falls back to DefaultStatus.
func InsertTaskForUser(userID int, title string, description *string, statusName string) Statement {
	if statusName == "" {
		statusName = DefaultStatus
	}
	return Statement{
		Name: "insert_task_for_user",
		SQL: `INSERT INTO tasks (title, description, status_id, user_id)
VALUES ($1, $2,
       (SELECT id FROM status WHERE name = $3),
       $4)
RETURNING id;`,
		Args: []any{title, description, statusName, userID},
		Kind: WriteReturning,
	}
}

func NotCompletedTasks() Statement {
	return Statement{
		Name: "not_completed_tasks",
		SQL: `SELECT t.*
  FROM tasks t
  JOIN status s ON s.id = t.status_id
 WHERE s.name <> 'completed'
 ORDER BY t.id;`,
		Args: []any{},
		Kind: Read,
	}
}

func DeleteTask(taskID int) Statement {
	return Statement{
		Name: "delete_task",
		SQL:  `DELETE FROM tasks WHERE id = $1;`,
		Args: []any{taskID},
		Kind: Write,
	}
}

func UsersByEmailLike(pattern string) Statement {
	return Statement{
		Name: "users_by_email_like",
		SQL:  `SELECT * FROM users WHERE email LIKE $1 ORDER BY id;`,
		Args: []any{pattern},
		Kind: Read,
	}
}

func UpdateUserName(userID int, newName string) Statement {
	return Statement{
		Name: "update_user_name",
		SQL:  `UPDATE users SET fullname = $1 WHERE id = $2;`,
		Args: []any{newName, userID},
		Kind: Write,
	}
}

func TaskCountByStatus() Statement {
	return Statement{
		Name: "task_count_by_status",
		SQL: `SELECT s.name AS status, COUNT(t.id) AS task_count
  FROM status s
  LEFT JOIN tasks t ON t.status_id = s.id
 GROUP BY s.name
 ORDER BY task_count DESC, s.name;`,
		Args: []any{},
		Kind: Read,
	}
}

func TasksForEmailDomain(domainPattern string) Statement {
	return Statement{
		Name: "tasks_for_email_domain",
		SQL: `SELECT t.*
  FROM tasks t
  JOIN users u ON u.id = t.user_id
 WHERE u.email LIKE $1
 ORDER BY t.id;`,
		Args: []any{domainPattern},
		Kind: Read,
	}
}

func TasksWithoutDescription() Statement {
	return Statement{
		Name: "tasks_without_description",
		SQL:  `SELECT * FROM tasks WHERE description IS NULL OR description = '' ORDER BY id;`,
		Args: []any{},
		Kind: Read,
	}
}

func UsersWithInProgressTasks() Statement {
	return Statement{
		Name: "users_with_in_progress_tasks",
		SQL: `SELECT u.fullname, t.title, t.id
  FROM users u
  JOIN tasks t  ON t.user_id = u.id
  JOIN status s ON s.id = t.status_id
 WHERE s.name = 'in progress'
 ORDER BY u.fullname, t.id;`,
		Args: []any{},
		Kind: Read,
	}
}

func UsersAndTaskCounts() Statement {
	return Statement{
		Name: "users_and_task_counts",
		SQL: `SELECT u.id, u.fullname, COUNT(t.id) AS tasks_count
  FROM users u
  LEFT JOIN tasks t ON t.user_id = u.id
 GROUP BY u.id, u.fullname
 ORDER BY tasks_count DESC, u.fullname;`,
		Args: []any{},
		Kind: Read,
	}
}
