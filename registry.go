package auth

import "context"

// Registry holds the strategies the service authenticates with. It is built
// once at startup with the collaborators injected and is immutable after
// that, so lookups are safe for concurrent use.
type Registry struct {
	strategies map[StrategyName]Strategy
	logger     Logger
}

type RegistryOption func(*Registry)

func WithRegistryLogger(logger Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry wires the four strategies over the given stores.
func NewRegistry(tokens TokenStore, principals PrincipalStore, opts ...RegistryOption) *Registry {
	r := &Registry{
		strategies: map[StrategyName]Strategy{},
		logger:     defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	r.register(&mailAuthStrategy{tokens: tokens, principals: principals, logger: r.logger})
	r.register(&clientCredentialsStrategy{name: StrategyClientBasic, principals: principals})
	r.register(&clientCredentialsStrategy{name: StrategyClientBody, principals: principals})
	r.register(&clientAPIStrategy{tokens: tokens, principals: principals, logger: r.logger})

	return r
}

func (r *Registry) register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Strategy returns the named strategy, or false for a name that was never
// registered.
func (r *Registry) Strategy(name StrategyName) (Strategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}

// Authenticate runs the named strategy against the given credentials. An
// unregistered name is a wiring bug and fails rather than rejects.
func (r *Registry) Authenticate(ctx context.Context, name StrategyName, creds Credentials) Outcome {
	strategy, ok := r.Strategy(name)
	if !ok {
		return Fail(ErrUnknownStrategy)
	}
	return strategy.Authenticate(ctx, creds)
}
