package fakeapi

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const localUserID = "user_id"

// 🔎 Request-ID + timing + counter
func (s *Server) trace() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)

		s.mu.Lock()
		s.total++
		s.hits[c.Method()+" "+c.Path()]++
		s.lastAuth = c.Get(fiber.HeaderAuthorization)
		s.lastReqID = id
		s.mu.Unlock()

		start := time.Now()
		err := c.Next()
		s.log.Debug("fakeapi request",
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}

// Kegagalan/latensi buatan untuk test jalur error.
func (s *Server) chaos() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s.mu.Lock()
		f, delay := s.fail, s.delay
		s.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		if f != nil {
			return fail(c, f.status, f.message)
		}
		return c.Next()
	}
}

func (s *Server) authRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, err.Error())
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		}); err != nil {
			return fail(c, fiber.StatusUnauthorized, "Unauthorized - Token invalid or expired")
		}

		userID, _ := claims["id"].(string)
		if strings.TrimSpace(userID) == "" {
			return fail(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals(localUserID, userID)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	const p = "Bearer "
	auth := c.Get(fiber.HeaderAuthorization)
	if auth == "" {
		return "", errors.New("Unauthorized - No token provided")
	}
	if !strings.HasPrefix(auth, p) || len(auth) <= len(p) {
		return "", errors.New("Unauthorized - Invalid token format")
	}
	return strings.TrimSpace(auth[len(p):]), nil
}

func corsMiddleware(origins []string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  strings.Join(origins, ", "),
		AllowMethods:  "GET,POST,PUT,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders: "X-Request-ID",
	})
}

// Rate limiter untuk login route (lebih ketat)
func (s *Server) loginRateLimiter() fiber.Handler {
	if s.loginLimit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        s.loginLimit,
		Expiration: s.loginWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fail(c, fiber.StatusTooManyRequests, "Quá nhiều lần đăng nhập. Vui lòng thử lại sau!")
		},
	})
}
