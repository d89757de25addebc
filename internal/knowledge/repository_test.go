package knowledge

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisRepository(client)
	ctx := context.Background()

	if err := repo.AppendChunks(ctx, []string{"Chunk1", "Chunk2"}); err != nil {
		t.Fatalf("AppendChunks failed: %v", err)
	}
	if err := repo.AppendChunks(ctx, nil); err != nil {
		t.Fatalf("AppendChunks with nothing failed: %v", err)
	}

	chunks, err := repo.LoadChunks(ctx)
	if err != nil {
		t.Fatalf("LoadChunks failed: %v", err)
	}
	if len(chunks) != 2 || chunks[0] != "Chunk1" {
		t.Fatalf("unexpected chunks: %#v", chunks)
	}

	version, err := repo.Version(ctx)
	if err != nil || version != 1 {
		t.Fatalf("expected version 1, got %d (%v)", version, err)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	chunks, err = repo.LoadChunks(ctx)
	if err != nil || len(chunks) != 0 {
		t.Fatalf("expected no chunks after clear, got %#v (%v)", chunks, err)
	}
	if version, _ := repo.Version(ctx); version != 2 {
		t.Fatalf("expected version 2 after clear, got %d", version)
	}
}

func TestRedisRepository_VersionStartsAtZero(t *testing.T) {
	mr := miniredis.RunT(t)
	repo := NewRedisRepository(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	version, err := repo.Version(context.Background())
	if err != nil || version != 0 {
		t.Fatalf("expected version 0, got %d (%v)", version, err)
	}
}
