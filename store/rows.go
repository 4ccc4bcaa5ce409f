package store

import (
	"time"

	"tasktracker/model"
)

// Row types are the on-disk shape for the table/document backends. Position
// holds the record's index in its collection so reads keep insertion order.

type userRow struct {
	ID           string `gorm:"primaryKey" firestore:"id"`
	Position     int    `gorm:"index" firestore:"position"`
	Email        string `gorm:"index" firestore:"email"`
	Name         string `firestore:"name"`
	PasswordHash string `firestore:"passwordHash"`
}

func (userRow) TableName() string { return UsersCollection }

type projectRow struct {
	ID          string    `gorm:"primaryKey" firestore:"id"`
	Position    int       `gorm:"index" firestore:"position"`
	Name        string    `firestore:"name"`
	Description string    `firestore:"description"`
	OwnerID     string    `gorm:"index" firestore:"ownerId"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false" firestore:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false" firestore:"updatedAt"`
}

func (projectRow) TableName() string { return ProjectsCollection }

type taskRow struct {
	ID          string    `gorm:"primaryKey" firestore:"id"`
	Position    int       `gorm:"index" firestore:"position"`
	ProjectID   string    `gorm:"index" firestore:"projectId"`
	Title       string    `firestore:"title"`
	Description string    `firestore:"description"`
	Status      string    `firestore:"status"`
	Priority    string    `firestore:"priority"`
	DueDate     *string   `firestore:"dueDate"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false" firestore:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false" firestore:"updatedAt"`
}

func (taskRow) TableName() string { return TasksCollection }

type rowSet struct {
	users    []userRow
	projects []projectRow
	tasks    []taskRow
}

func (r userRow) key() (string, int)    { return r.ID, r.Position }
func (r projectRow) key() (string, int) { return r.ID, r.Position }
func (r taskRow) key() (string, int)    { return r.ID, r.Position }

// toRows converts d into rows. Records already present in prev keep their
// stored Position, so deleting or editing one record leaves the others
// unchanged for diffRows.
func toRows(d Dataset, prev rowSet) rowSet {
	userPos := nextPositions(len(d.Users), func(i int) string { return d.Users[i].ID }, positionIndex(prev.users))
	projectPos := nextPositions(len(d.Projects), func(i int) string { return d.Projects[i].ID }, positionIndex(prev.projects))
	taskPos := nextPositions(len(d.Tasks), func(i int) string { return d.Tasks[i].ID }, positionIndex(prev.tasks))

	rs := rowSet{
		users:    make([]userRow, len(d.Users)),
		projects: make([]projectRow, len(d.Projects)),
		tasks:    make([]taskRow, len(d.Tasks)),
	}
	for i, u := range d.Users {
		rs.users[i] = userRow{ID: u.ID, Position: userPos[i], Email: u.Email, Name: u.Name, PasswordHash: u.PasswordHash}
	}
	for i, p := range d.Projects {
		rs.projects[i] = projectRow{
			ID: p.ID, Position: projectPos[i], Name: p.Name, Description: p.Description,
			OwnerID: p.OwnerID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
		}
	}
	for i, t := range d.Tasks {
		rs.tasks[i] = taskRow{
			ID: t.ID, Position: taskPos[i], ProjectID: t.ProjectID, Title: t.Title,
			Description: t.Description, Status: t.Status, Priority: t.Priority,
			DueDate: t.DueDate, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
		}
	}
	return rs
}

func positionIndex[R interface{ key() (string, int) }](rows []R) map[string]int {
	index := make(map[string]int, len(rows))
	for _, r := range rows {
		id, pos := r.key()
		index[id] = pos
	}
	return index
}

// nextPositions returns strictly increasing positions for n records in slice
// order. A record keeps its previous position when that is still above the
// one before it; otherwise it takes the next slot.
func nextPositions(n int, id func(int) string, prev map[string]int) []int {
	out := make([]int, n)
	last := -1
	for i := range n {
		if p, ok := prev[id(i)]; ok && p > last {
			last = p
		} else {
			last++
		}
		out[i] = last
	}
	return out
}

// fromRows expects each slice already ordered by Position.
func fromRows(rs rowSet) Dataset {
	d := Dataset{
		Users:    make([]model.User, len(rs.users)),
		Projects: make([]model.Project, len(rs.projects)),
		Tasks:    make([]model.Task, len(rs.tasks)),
	}
	for i, u := range rs.users {
		d.Users[i] = model.User{ID: u.ID, Email: u.Email, Name: u.Name, PasswordHash: u.PasswordHash}
	}
	for i, p := range rs.projects {
		d.Projects[i] = model.Project{
			ID: p.ID, Name: p.Name, Description: p.Description, OwnerID: p.OwnerID,
			CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
		}
	}
	for i, t := range rs.tasks {
		d.Tasks[i] = model.Task{
			ID: t.ID, ProjectID: t.ProjectID, Title: t.Title, Description: t.Description,
			Status: t.Status, Priority: t.Priority, DueDate: t.DueDate,
			CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
		}
	}
	return d
}
