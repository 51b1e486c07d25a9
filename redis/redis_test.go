package redis

import (
	"context"
	"testing"

	"transit-dashboard/config"

	"github.com/alicebob/miniredis/v2"
)

func TestNewClient_Disabled(t *testing.T) {
	rdb, err := NewClient(config.RedisConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if rdb != nil {
		t.Error("Expected nil client when Redis is disabled")
	}
}

func TestNewClient_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewClient(config.RedisConfig{
		Enabled:          true,
		Address:          mr.Addr(),
		PoolSize:         2,
		OperationTimeout: 1,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer rdb.Close()

	if _, err := Ping(context.Background(), rdb); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestNewClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClient(config.RedisConfig{
		Enabled:          true,
		Address:          addr,
		OperationTimeout: 1,
	})
	if err == nil {
		t.Error("Expected error for unreachable Redis")
	}
}
