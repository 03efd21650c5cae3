package server

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsage/skillsage-backend/internal/config"
)

func TestShutdown_HonorsCallerDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	gin.SetMode(gin.TestMode)
	cfg := &config.ServerConfig{
		Host:         "127.0.0.1",
		Port:         port,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}
	srv := NewServer(cfg, gin.New())

	go func() { _ = srv.Start() }()

	var conn net.Conn
	require.Eventually(t, func() bool {
		conn, err = net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond, "server never came up")
	defer conn.Close()

	// Half a request keeps the connection active, so Shutdown has to
	// wait on it until the caller's context runs out.
	_, err = conn.Write([]byte("GET / HTTP/1.1\r\nHost: localhost\r\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = srv.Shutdown(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second, "shutdown must give up at the caller's deadline")
}
