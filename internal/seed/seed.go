// Package seed generates fake users and tasks for the task manager.
package seed

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/taskdb/taskdb/internal/model"
)

// Generator produces fake rows. The zero seed draws from a random
// source, so datasets differ between runs.
type Generator struct {
	faker    *gofakeit.Faker
	statuses []string
	tasksMin int
	tasksMax int
}

// NewGenerator returns a generator; seed 0 means unseeded.
func NewGenerator(seed uint64, statuses []string, tasksMin, tasksMax int) *Generator {
	return &Generator{
		faker:    gofakeit.New(seed),
		statuses: statuses,
		tasksMin: tasksMin,
		tasksMax: tasksMax,
	}
}

// Users returns n users with emails unique within the batch.
func (g *Generator) Users(n int) []model.User {
	users := make([]model.User, 0, n)
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		email := strings.ToLower(g.faker.Email())
		for attempt := 0; seen[email] && attempt < 10; attempt++ {
			email = strings.ToLower(g.faker.Email())
		}
		if seen[email] {
			local, domain, _ := strings.Cut(email, "@")
			email = fmt.Sprintf("%s.%d@%s", local, i, domain)
		}
		seen[email] = true

		users = append(users, model.User{
			FullName: truncate(g.faker.Name(), 100),
			Email:    truncate(email, 100),
		})
	}
	return users
}

// Tasks generates between tasksMin and tasksMax tasks for every user id,
// each with a random status taken from statusIDs.
func (g *Generator) Tasks(userIDs []int, statusIDs map[string]int) ([]model.Task, error) {
	for _, name := range g.statuses {
		if _, ok := statusIDs[name]; !ok {
			return nil, fmt.Errorf("status %q has no id", name)
		}
	}

	var tasks []model.Task
	for _, uid := range userIDs {
		k := g.faker.IntRange(g.tasksMin, g.tasksMax)
		for j := 0; j < k; j++ {
			title := strings.TrimSuffix(g.faker.Sentence(5), ".")
			desc := g.description()
			status := g.faker.RandomString(g.statuses)

			tasks = append(tasks, model.Task{
				Title:       truncate(title, 100),
				Description: &desc,
				StatusID:    statusIDs[status],
				UserID:      uid,
			})
		}
	}
	return tasks, nil
}

func (g *Generator) description() string {
	sentences := make([]string, 3)
	for i := range sentences {
		sentences[i] = g.faker.Sentence(8)
	}
	return strings.Join(sentences, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
