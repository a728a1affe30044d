package api

import "github.com/okian/collections/pkg/logger"

// Option configures a Server.
type Option func(*Server)

// WithProducts mounts the /products routes.
func WithProducts(deps ProductsDependencies) Option {
	return func(s *Server) {
		if deps != nil {
			s.productsHandler = NewProductsHandler(deps)
		}
	}
}

// WithPosts mounts the /api/posts routes.
func WithPosts(deps PostsDependencies) Option {
	return func(s *Server) {
		if deps != nil {
			s.postsHandler = NewPostsHandler(deps)
		}
	}
}

// WithCORS enables the cross-origin middleware for origins. Empty origins means all.
func WithCORS(enabled bool, origins ...string) Option {
	return func(s *Server) {
		s.corsEnabled = enabled
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithLogger sets the logger used by the access log.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
