package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "DB_DRIVER", "LOCAL_WORKSHEETS", "GEMINI_MODEL", "FETCH_TIMEOUT_SEC", "CORS_ORIGINS_OFFLINE"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Mode != ModeOffline || c.HTTPAddr != ":8080" || c.DBDriver != "sqlite" {
		t.Fatalf("defaults = %+v", c)
	}
	if c.LocalWorksheets || c.GeminiModel != "gemini-2.0-flash" || c.FetchTimeout != 15*time.Second {
		t.Fatalf("defaults = %+v", c)
	}
	if got := c.CORSOrigins(); len(got) != 2 {
		t.Fatalf("offline origins = %v", got)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("LOCAL_WORKSHEETS", "yes")
	t.Setenv("FETCH_TIMEOUT_SEC", "3")
	t.Setenv("CORS_ORIGINS_ONLINE", " https://quiz.example , ,https://kids.example")
	c := FromEnv()
	if !c.LocalWorksheets || c.FetchTimeout != 3*time.Second {
		t.Fatalf("overrides = %+v", c)
	}
	got := c.CORSOrigins()
	if len(got) != 2 || got[0] != "https://quiz.example" {
		t.Fatalf("online origins = %v", got)
	}
}

func TestEnvIntRejectsGarbage(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT_SEC", "soon")
	if got := envInt("FETCH_TIMEOUT_SEC", 7); got != 7 {
		t.Fatalf("envInt = %d", got)
	}
}
