package catalog

import (
	"fmt"
	"strings"
)

// Input supplies the answers an action needs. Int fails on anything
// that is not an integer; String returns the trimmed answer.
type Input interface {
	Int(label string) (int, error)
	String(label string) (string, error)
}

// Action is one numbered menu entry.
type Action struct {
	Key       string
	Label     string
	NeedsArgs bool
	Build     func(in Input) (Statement, error)
}

func noArgs(build func() Statement) func(Input) (Statement, error) {
	return func(Input) (Statement, error) {
		return build(), nil
	}
}

var actions = []Action{
	{
		Key: "1", Label: "All tasks of a user (by user_id)", NeedsArgs: true,
		Build: func(in Input) (Statement, error) {
			userID, err := in.Int("user_id")
			if err != nil {
				return Statement{}, err
			}
			return TasksByUser(userID), nil
		},
	},
	{
		Key: "2", Label: "Tasks by status (name)", NeedsArgs: true,
		Build: func(in Input) (Statement, error) {
			name, err := in.String("status name (new/in progress/completed)")
			if err != nil {
				return Statement{}, err
			}
			return TasksByStatusName(name), nil
		},
	},
	{
		Key: "3", Label: "Update task status", NeedsArgs: true,
		Build: func(in Input) (Statement, error) {
			taskID, err := in.Int("task_id")
			if err != nil {
				return Statement{}, err
			}
			status, err := in.String("new status")
			if err != nil {
				return Statement{}, err
			}
			return UpdateTaskStatus(taskID, status), nil
		},
	},
	{Key: "4", Label: "Users without any task", Build: noArgs(UsersWithoutTasks)},
	{
		Key: "5", Label: "Add a new task for a user", NeedsArgs: true,
		Build: func(in Input) (Statement, error) {
			userID, err := in.Int("user_id")
			if err != nil {
				return Statement{}, err
			}
			title, err := in.String("title")
			if err != nil {
				return Statement{}, err
			}
			desc, err := in.String("description (optional, Enter=empty)")
			if err != nil {
				return Statement{}, err
			}
			status, err := in.String(fmt.Sprintf("status (default '%s')", DefaultStatus))
			if err != nil {
				return Statement{}, err
			}
			var description *string
			if desc != "" {
				description = &desc
			}
			return InsertTaskForUser(userID, title, description, status), nil
		},
	},
	{Key: "6", Label: "Tasks that are not completed", Build: noArgs(NotCompletedTasks)},
	{
		Key: "7", Label: "Delete a task by id", NeedsArgs: true,
		Build: func(in Input) (Statement, error) {
			taskID, err := in.Int("task_id")
			if err != nil {
				return Statement{}, err
			}
			return DeleteTask(taskID), nil
		},
	},
	{
		Key: "8", Label: "Users by email LIKE", NeedsArgs: true,
		Build: func(in Input) (Statement, error) {
			pattern, err := in.String("pattern (e.g. %@gmail.com)")
			if err != nil {
				return Statement{}, err
			}
			return UsersByEmailLike(pattern), nil
		},
	},
	{
		Key: "9", Label: "Update a user's name", NeedsArgs: true,
		Build: func(in Input) (Statement, error) {
			userID, err := in.Int("user_id")
			if err != nil {
				return Statement{}, err
			}
			name, err := in.String("new fullname")
			if err != nil {
				return Statement{}, err
			}
			return UpdateUserName(userID, name), nil
		},
	},
	{Key: "10", Label: "Task count by status", Build: noArgs(TaskCountByStatus)},
	{
		Key: "11", Label: "Tasks for an email domain", NeedsArgs: true,
		Build: func(in Input) (Statement, error) {
			pattern, err := in.String("domain pattern (e.g. %@example.com)")
			if err != nil {
				return Statement{}, err
			}
			return TasksForEmailDomain(pattern), nil
		},
	},
	{Key: "12", Label: "Tasks without a description", Build: noArgs(TasksWithoutDescription)},
	{Key: "13", Label: "Users and their 'in progress' tasks", Build: noArgs(UsersWithInProgressTasks)},
	{Key: "14", Label: "Users and their task counts", Build: noArgs(UsersAndTaskCounts)},
}

// Actions returns the menu entries in display order.
func Actions() []Action {
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

// Lookup finds an action by its menu key.
func Lookup(key string) (Action, bool) {
	key = strings.TrimSpace(key)
	for _, a := range actions {
		if a.Key == key {
			return a, true
		}
	}
	return Action{}, false
}

// MenuLine renders "5) Add a new task for a user *args".
func (a Action) MenuLine() string {
	line := a.Key + ") " + a.Label
	if a.NeedsArgs {
		line += " *args"
	}
	return line
}
