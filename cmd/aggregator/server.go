package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ethdk/internal/aggregator"
	"ethdk/internal/crypto"
	"ethdk/internal/domain"
	"ethdk/internal/logger"
	"ethdk/internal/wallet"
)

// Failure types reported to clients.
const (
	FailureMalformed        = "malformed-bundle"
	FailureInvalidPublicKey = "invalid-public-key"
	FailureInvalidOperation = "invalid-operation"
	FailureInvalidSignature = "invalid-signature"
	FailureDuplicate        = "duplicate-bundle"
)

type memoryStore struct {
	mu      sync.RWMutex
	bundles map[string]domain.Bundle
}

func newMemoryStore() *memoryStore {
	return &memoryStore{bundles: make(map[string]domain.Bundle)}
}

// put stores b under hash and reports false if it was already there.
func (m *memoryStore) put(hash string, b domain.Bundle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bundles[hash]; ok {
		return false
	}
	m.bundles[hash] = b
	return true
}

func (m *memoryStore) get(hash string) (domain.Bundle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bundles[hash]
	return b, ok
}

// Server is the dev aggregator: a gin engine over an in-memory bundle store.
type Server struct {
	Engine  *gin.Engine
	chainID *big.Int
	store   *memoryStore
	log     *logger.Logger
}

// NewServer builds the router for bundles signed on chainID.
func NewServer(chainID int64, log *logger.Logger) *Server {
	s := &Server{
		chainID: big.NewInt(chainID),
		store:   newMemoryStore(),
		log:     log.With("component", "aggregator"),
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.log))
	r.POST("/bundle", s.addBundle)
	r.GET("/bundle/:hash", s.getBundle)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "chainId": s.chainID.String()})
	})
	s.Engine = r
	return s
}

func (s *Server) addBundle(c *gin.Context) {
	var b domain.Bundle
	if err := c.ShouldBindJSON(&b); err != nil {
		reject(c, FailureMalformed, err.Error())
		return
	}
	if fs := s.verify(b); len(fs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"failures": fs})
		return
	}

	raw, err := json.Marshal(b)
	if err != nil {
		reject(c, FailureMalformed, err.Error())
		return
	}
	hash := ethcrypto.Keccak256Hash(raw).Hex()
	if !s.store.put(hash, b) {
		reject(c, FailureDuplicate, "bundle "+hash+" already submitted")
		return
	}
	s.log.Info("bundle accepted",
		"hash", hash,
		"operations", len(b.Operations),
		"request_id", c.GetString(aggregator.RequestIDHeader),
	)
	c.JSON(http.StatusOK, gin.H{"hash": hash})
}

func (s *Server) getBundle(c *gin.Context) {
	b, ok := s.store.get(c.Param("hash"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// verify returns every reason b cannot be accepted.
func (s *Server) verify(b domain.Bundle) []domain.TransactionFailure {
	if len(b.Operations) == 0 || len(b.SenderPublicKeys) != len(b.Operations) {
		return []domain.TransactionFailure{{
			Type: FailureMalformed,
			Description: fmt.Sprintf("%d public keys for %d operations",
				len(b.SenderPublicKeys), len(b.Operations)),
		}}
	}

	var fs []domain.TransactionFailure
	pubs := make([]*crypto.PublicKey, len(b.SenderPublicKeys))
	for i, h := range b.SenderPublicKeys {
		pk, err := crypto.PublicKeyFromHex(h)
		if err != nil {
			fs = append(fs, domain.TransactionFailure{
				Type:        FailureInvalidPublicKey,
				Description: fmt.Sprintf("public key %d: %v", i, err),
			})
			continue
		}
		pubs[i] = pk
	}

	msgs := make([][]byte, len(b.Operations))
	for i, op := range b.Operations {
		msg, err := s.encode(op)
		if err != nil {
			fs = append(fs, domain.TransactionFailure{
				Type:        FailureInvalidOperation,
				Description: fmt.Sprintf("operation %d: %v", i, err),
			})
			continue
		}
		msgs[i] = msg
	}

	sig, err := crypto.SignatureFromHex(b.Signature)
	if err != nil {
		fs = append(fs, domain.TransactionFailure{Type: FailureInvalidSignature, Description: err.Error()})
	}
	if len(fs) > 0 {
		return fs
	}

	ok, err := crypto.VerifyAggregate(pubs, msgs, sig)
	if err != nil || !ok {
		desc := "aggregate signature does not verify"
		if err != nil {
			desc = err.Error()
		}
		return []domain.TransactionFailure{{Type: FailureInvalidSignature, Description: desc}}
	}
	return nil
}

func (s *Server) encode(op domain.Operation) ([]byte, error) {
	if len(op.Actions) == 0 {
		return nil, fmt.Errorf("no actions")
	}
	return wallet.EncodeMessage(s.chainID, op)
}

func reject(c *gin.Context, typ, desc string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"failures": []domain.TransactionFailure{{Type: typ, Description: desc}},
	})
}

// requestID echoes the client's X-Request-ID or assigns one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(aggregator.RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(aggregator.RequestIDHeader, id)
		c.Header(aggregator.RequestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString(aggregator.RequestIDHeader),
		}
		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
