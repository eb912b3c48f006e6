//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/devillers/checkin-sub000/internal/domain"
	mysqlrepo "github.com/devillers/checkin-sub000/internal/storage/mysql"
)

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=checkin",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "checkin")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func sampleProperty(id, slug string) domain.Property {
	p := domain.Property{
		ID:   id,
		Name: "Loft Belleville",
		Type: domain.TypeLoft,
		Slug: slug,
	}
	p.General.Name = p.Name
	p.General.Type = p.Type
	p.Address.City = "Paris"
	p.Address.PostalCode = "75020"
	p.MaxGuests = 2
	p.ProfilePhoto = "https://cdn.example.com/hero.jpg"
	return p
}

func TestRepo_MySQL_UpsertAndQuery(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	p := sampleProperty("11111111-1111-1111-1111-111111111111", "loft-belleville")
	if err := repo.UpsertProperty(ctx, p); err != nil {
		t.Fatalf("UpsertProperty: %v", err)
	}

	// idempotent overwrite under the same id
	p.Name = "Loft Belleville 2"
	p.General.Name = p.Name
	if err := repo.UpsertProperty(ctx, p); err != nil {
		t.Fatalf("UpsertProperty (again): %v", err)
	}

	got, err := repo.GetProperty(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	if got.ID != p.ID || got.Name != "Loft Belleville 2" || got.Address.PostalCode != "75020" {
		t.Fatalf("unexpected property: %+v", got)
	}

	bySlug, err := repo.GetPropertyBySlug(ctx, "loft-belleville")
	if err != nil {
		t.Fatalf("GetPropertyBySlug: %v", err)
	}
	if bySlug.ID != p.ID {
		t.Fatalf("slug lookup mismatch: %+v", bySlug)
	}

	if _, err := repo.GetProperty(ctx, "99999999-9999-9999-9999-999999999999"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.AppendActivity(ctx, domain.ActivityEntry{
		PropertyID: p.ID, Action: "create", Actor: "test", Detail: p.Name,
	}); err != nil {
		t.Fatalf("AppendActivity: %v", err)
	}

	page, err := repo.ListProperties(ctx, domain.PropertiesQuery{Limit: 10})
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Slug != "loft-belleville" {
		t.Fatalf("unexpected page: %+v", page)
	}

	city := "Lyon"
	empty, err := repo.ListProperties(ctx, domain.PropertiesQuery{City: &city, Limit: 10})
	if err != nil {
		t.Fatalf("ListProperties filtered: %v", err)
	}
	if len(empty.Items) != 0 {
		t.Fatalf("expected no Lyon listings: %+v", empty)
	}
}
