package dataset

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/kailas-cloud/recordq/internal/domain/record"
)

var (
	positions = []string{
		"Software Engineer", "Senior Software Engineer", "Lead Developer", "Full Stack Developer",
		"Product Manager", "Senior Product Manager", "Product Owner", "Product Director",
		"UX Designer", "UI/UX Designer", "Senior Designer", "Design Lead",
		"Data Analyst", "Data Scientist", "Data Engineer", "Analytics Lead",
	}
	userStatuses  = []string{"Active", "On Leave", "Remote", "Inactive", "Probation", "Contract"}
	docCategories = []string{"Document", "Image", "Video"}
	docStatuses   = []string{"Active", "Inactive", "Pending"}
)

var fileExtByCategory = map[string][]string{
	"Document": {"pdf", "docx", "txt", "xlsx", "csv"},
	"Image":    {"png", "jpg", "gif", "svg"},
	"Video":    {"mp4", "mov", "avi", "webm"},
}

const (
	hireWindow    = 5 * 365 * 24 * time.Hour
	historyWindow = 30 * 24 * time.Hour
	isoSeconds    = "2006-01-02T15:04:05"
)

// Generator produces fake users and documents. The same seed and reference time
// always produce the same records.
type Generator struct {
	faker *gofakeit.Faker
	ids   *rand.ChaCha8
	now   time.Time
}

// NewGenerator creates a Generator. now anchors every generated date.
// A zero seed picks a random one.
func NewGenerator(seed uint64, now time.Time) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return &Generator{
		faker: gofakeit.New(seed),
		ids:   rand.NewChaCha8(key),
		now:   now.UTC().Truncate(time.Second),
	}
}

// Users generates n user records with ids 1..n.
func (g *Generator) Users(n int) []record.Record {
	users := make([]record.Record, 0, n)
	seen := make(map[int]struct{}, n)
	for i := range n {
		users = append(users, record.New(
			record.F("id", record.Int(int64(i+1))),
			record.F("name", record.Str(g.faker.Name())),
			record.F("position", record.Str(g.pick(positions))),
			record.F("address", record.Str(g.address())),
			record.F("status", record.Str(g.pick(userStatuses))),
			record.F("email", record.Str(g.faker.Email())),
			record.F("phone", record.Str(g.faker.Phone())),
			record.F("department", record.Str(g.faker.CompanySuffix())),
			record.F("hire_date", record.Str(g.pastDate(hireWindow).Format(time.DateOnly))),
			record.F("employee_id", record.Int(int64(g.employeeID(seen)))),
		))
	}
	return users
}

// Documents generates n document records with UUID ids.
func (g *Generator) Documents(n int) []record.Record {
	docs := make([]record.Record, 0, n)
	for range n {
		category := g.pick(docCategories)
		name := g.fileName(category)

		tags := make([]string, g.faker.Number(1, 5))
		for i := range tags {
			tags[i] = g.faker.Word()
		}

		docs = append(docs, record.New(
			record.F("id", record.Str(g.uuid())),
			record.F("name", record.Str(name)),
			record.F("description", record.Str(g.paragraph())),
			record.F("file_path", record.Str("/"+g.faker.Word()+"/"+name)),
			record.F("category", record.Str(category)),
			record.F("status", record.Str(g.pick(docStatuses))),
			record.F("tags", record.Strings(tags...)),
			record.F("createdAt", record.Str(g.pastDate(historyWindow).Format(isoSeconds))),
			record.F("updatedAt", record.Str(g.pastDate(historyWindow).Format(isoSeconds))),
		))
	}
	return docs
}

func (g *Generator) pick(pool []string) string {
	return pool[g.faker.Number(0, len(pool)-1)]
}

func (g *Generator) pastDate(window time.Duration) time.Time {
	return g.faker.DateRange(g.now.Add(-window), g.now).UTC()
}

func (g *Generator) address() string {
	return fmt.Sprintf("%s, %s, %s %s", g.faker.Street(), g.faker.City(), g.faker.StateAbr(), g.faker.Zip())
}

func (g *Generator) fileName(category string) string {
	return g.faker.Word() + "." + g.pick(fileExtByCategory[category])
}

func (g *Generator) paragraph() string {
	sentences := make([]string, g.faker.Number(3, 5))
	for i := range sentences {
		words := make([]string, g.faker.Number(5, 12))
		for j := range words {
			words[j] = g.faker.Word()
		}
		s := strings.Join(words, " ")
		sentences[i] = strings.ToUpper(s[:1]) + s[1:] + "."
	}
	return strings.Join(sentences, " ")
}

// employeeID draws a six-digit number not handed out before.
func (g *Generator) employeeID(seen map[int]struct{}) int {
	for {
		id := g.faker.Number(100000, 999999)
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			return id
		}
	}
}

func (g *Generator) uuid() string {
	id, err := uuid.NewRandomFromReader(g.ids)
	if err != nil {
		// ChaCha8 reads never fail.
		panic(fmt.Sprintf("generate uuid: %v", err))
	}
	return id.String()
}
