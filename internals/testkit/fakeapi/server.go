// file: internals/testkit/fakeapi/server.go
//
// Backend REST tiruan (in-process) untuk test dan demo lokal.
// Semua state di memori; tidak ada persistence.
package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	helper "studentpoints_client/internals/helpers"
)

const (
	Prefix          = "/api"
	DefaultSecret   = "fakeapi-secret"
	DefaultTokenTTL = 24 * time.Hour
)

type failure struct {
	status  int
	message string
}

type Server struct {
	app      *fiber.App
	log      *zap.Logger
	validate *validator.Validate

	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int

	mu        sync.Mutex
	users     map[string]*user // username → user
	profiles  map[string]*Profile
	evidences []*Evidence
	hits      map[string]int
	total     int
	lastAuth  string
	lastReqID string
	fail      *failure
	delay     time.Duration

	corsOrigins []string
	loginLimit  int
	loginWindow time.Duration
}

type Option func(*Server)

func WithSecret(secret string) Option {
	return func(s *Server) { s.secret = []byte(secret) }
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.tokenTTL = ttl }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Server) { s.log = helper.OrNop(log) }
}

// WithCORS mengizinkan origin tertentu (mis. Expo web / dev server lokal).
func WithCORS(origins ...string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

// WithLoginLimit membatasi percobaan login per IP; max <= 0 = tanpa batas.
func WithLoginLimit(max int, window time.Duration) Option {
	return func(s *Server) { s.loginLimit, s.loginWindow = max, window }
}

func New(opts ...Option) *Server {
	s := &Server{
		log:        zap.NewNop(),
		validate:   validator.New(),
		secret:     []byte(DefaultSecret),
		tokenTTL:   DefaultTokenTTL,
		bcryptCost: bcrypt.MinCost,
		users:      map[string]*user{},
		profiles:   map[string]*Profile{},
		hits:       map[string]int{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return fail(c, code, err.Error())
		},
	})
	s.app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	if len(s.corsOrigins) > 0 {
		s.app.Use(corsMiddleware(s.corsOrigins))
	}
	s.app.Use(s.trace())
	s.app.Use(s.chaos())
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group(Prefix)
	auth := s.authRequired()

	api.Post("/auth/login", s.loginRateLimiter(), s.login)
	api.Post("/auth/change-password", auth, s.changePassword)

	api.Get("/student-profiles/user/:userId", auth, s.getProfileByUser)
	api.Put("/student-profiles/:id", auth, s.updateProfile)

	api.Get("/evidences", auth, s.listEvidences)
	api.Get("/evidences/student/:studentId", auth, s.listEvidencesByStudent)
	api.Get("/evidences/:id", auth, s.getEvidence)
	api.Post("/evidences", auth, s.submitEvidence)
	api.Put("/evidences/:id", auth, s.updateEvidence)
}

// App untuk dipakai langsung (mis. app.Listen di command dev).
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Handler() http.HandlerFunc { return adaptor.FiberApp(s.app) }

// Start menjalankan server di port acak. URL yang dikembalikan sudah termasuk prefix /api.
func (s *Server) Start() (*httptest.Server, string) {
	ts := httptest.NewServer(s.Handler())
	return ts, ts.URL + Prefix
}

/* ===============================
   Seeding
=================================*/

// AddUser mendaftarkan akun; id dibuat kalau kosong.
func (s *Server) AddUser(id, username, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = uuid.NewString()
	}
	s.mu.Lock()
	s.users[username] = &user{id: id, username: username, hash: hash}
	s.mu.Unlock()
	return id, nil
}

func (s *Server) AddProfile(p Profile) Profile {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.mu.Lock()
	cp := p
	s.profiles[p.UserID] = &cp
	s.mu.Unlock()
	return p
}

// AddEvidence menambahkan record di akhir koleksi (urutan list mengikuti urutan seed).
func (s *Server) AddEvidence(e Evidence) Evidence {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = "pending"
	}
	s.mu.Lock()
	cp := e
	s.evidences = append(s.evidences, &cp)
	s.mu.Unlock()
	return e
}

func (s *Server) Evidences() []Evidence {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Evidence, 0, len(s.evidences))
	for _, e := range s.evidences {
		out = append(out, *e)
	}
	return out
}

func (s *Server) Profile(userID string) (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return Profile{}, false
	}
	return *p, true
}

// IssueToken membuat JWT HS256 seperti yang dikirim endpoint login.
func (s *Server) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

/* ===============================
   Knobs & counters
=================================*/

// FailWith membuat semua request berikutnya dibalas status + message ini sampai Heal dipanggil.
func (s *Server) FailWith(status int, message string) {
	s.mu.Lock()
	s.fail = &failure{status: status, message: message}
	s.mu.Unlock()
}

func (s *Server) Heal() {
	s.mu.Lock()
	s.fail = nil
	s.mu.Unlock()
}

func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

// Hits: jumlah request untuk "METHOD /api/path" (path aktual, bukan pola route).
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

func (s *Server) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// LastAuthorization: header Authorization dari request terakhir ("" kalau tidak ada).
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

func (s *Server) LastRequestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReqID
}
