/*
Package reso is a runtime service registry that resolves type-identified
dependencies through a hierarchy of containers, applying a caching scope
per registration.

To install reso:

	go get -u github.com/go-reso/reso

How to use:

	type Logger interface {
		Log(message string)
	}

	type Service struct {
		First  Logger
		Second Logger
	}

	reso.Bootstrap(func() {
		reso.Register(func(c *reso.Container, args any) (Logger, error) {
			return newConsoleLogger(), nil
		})

		reso.Register(func(c *reso.Container, args any) (*Service, error) {
			return &Service{
				First:  reso.Resolve[Logger](nil),
				Second: reso.Resolve[Logger](nil),
			}, nil
		})
	})

	// Both loggers are the same instance: the default Graph scope shares
	// instances within one outer resolution call tree.
	service := reso.Resolve[*Service](nil)

	// A recoverable variant returns an error instead of terminating:
	service, err := reso.Optional[*Service](nil)
	if err != nil {
		// handle absence
	}

Containers form a tree. Lookup checks the container itself, then each
attached child in attachment order (recursively), then the parent; the
first match wins:

	test := reso.New(reso.WithParent(reso.Main))
	test.Add(fixtures)
	reso.Root = test // redirect ambient resolutions

Functions:
  - reso.New
  - reso.Register / reso.RegisterNamed / reso.RegisterIn / reso.RegisterNamedIn
  - reso.Resolve / reso.ResolveNamed / reso.ResolveIn / reso.ResolveNamedIn
  - reso.Optional / reso.OptionalNamed / reso.OptionalIn / reso.OptionalNamedIn
  - reso.Implements / reso.ImplementsNamed
  - reso.Prepare / reso.PrepareNamed
  - reso.Bootstrap
  - reso.NewCacheScope
  - reso.SetErrorLogger

Scopes:

	reso.Application - one instance for the life of the process
	reso.Cached      - like Application, plus Reset
	reso.Graph       - shared within one resolution call tree (default)
	reso.Shared      - cached while the application holds the instance elsewhere
	reso.Unique      - a new instance on every resolution

Resolve terminates the resolution path when no registration is found or
construction yields nothing; Optional returns a typed error instead.
Using the Shared scope with an instance that cannot be weakly referenced
is fatal from either entry point.
*/
package reso
