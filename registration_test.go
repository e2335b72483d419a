package reso_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-reso/reso"
)

type widget struct {
	tag     string
	mutated bool
}

func widgetFactory(tag string) reso.Factory[*widget] {
	return func(*reso.Container, any) (*widget, error) {
		return &widget{tag: tag}, nil
	}
}

var _ = Describe("Registration", func() {
	It("should replace the factory in place on re-registration", func() {
		c := reso.New()
		scope := reso.NewCacheScope()

		first := reso.RegisterIn(c, widgetFactory("first")).
			WithScope(scope).
			WithMutator(func(_ *reso.Container, _ any, w *widget) {
				w.mutated = true
			})

		second := reso.RegisterIn(c, widgetFactory("second"))

		Expect(second).To(BeIdenticalTo(first), "the original handle is returned")

		w, err := reso.OptionalIn[*widget](c, nil)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(w.tag).To(Equal("second"), "the new factory is used")
		Expect(w.mutated).To(BeTrue(), "the previously configured mutator survives")

		again, err := reso.OptionalIn[*widget](c, nil)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(again).To(BeIdenticalTo(w), "the previously configured scope survives")
	})

	It("should replace only the named variant on named re-registration", func() {
		c := reso.New()
		reso.RegisterNamedIn(c, "a", nameFactory("a1"))
		reso.RegisterNamedIn(c, "b", nameFactory("b"))
		reso.RegisterNamedIn(c, "a", nameFactory("a2"))

		a, err := reso.OptionalNamedIn[NameService](c, "a", nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(a.Name()).To(Equal("a2"))

		b, err := reso.OptionalNamedIn[NameService](c, "b", nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(b.Name()).To(Equal("b"))
	})

	It("should fail unnamed resolution of a named-only registration with ErrNoFactory", func() {
		c := reso.New()
		reso.RegisterNamedIn(c, "only", nameFactory("only"))

		_, err := reso.OptionalIn[NameService](c, nil)

		Expect(err).Should(HaveOccurred())
		Expect(errors.Is(err, reso.ErrNoFactory)).To(BeTrue())
	})

	It("should invoke the mutator with container, args and instance", func() {
		c := reso.New()

		var (
			gotContainer *reso.Container
			gotArgs      any
		)

		reso.RegisterIn(c, widgetFactory("plain")).
			WithMutator(func(mc *reso.Container, args any, w *widget) {
				gotContainer = mc
				gotArgs = args
				w.mutated = true
			})

		w, err := reso.OptionalIn[*widget](c, "the-args")

		Expect(err).ShouldNot(HaveOccurred())
		Expect(w.mutated).To(BeTrue())
		Expect(gotContainer).To(BeIdenticalTo(c))
		Expect(gotArgs).To(Equal("the-args"))
	})

	It("should skip the mutator when the factory fails", func() {
		c := reso.New()

		mutated := false
		reso.RegisterIn(c, func(*reso.Container, any) (*widget, error) {
			return nil, fmt.Errorf("no parts")
		}).WithMutator(func(*reso.Container, any, *widget) {
			mutated = true
		})

		_, err := reso.OptionalIn[*widget](c, nil)

		Expect(err).Should(HaveOccurred())

		var construction *reso.ConstructionError
		Expect(errors.As(err, &construction)).To(BeTrue())
		Expect(mutated).To(BeFalse())
	})

	It("should narrow to a capability through Implements", func() {
		c := reso.New()

		r := reso.RegisterIn(c, func(*reso.Container, any) (staticName, error) {
			return staticName("narrowed"), nil
		}).WithScope(reso.Unique)

		reso.Implements[NameService](r)

		service, err := reso.OptionalIn[NameService](c, nil)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(service.Name()).To(Equal("narrowed"))
	})

	It("should treat a failed narrowing as a construction failure", func() {
		c := reso.New()

		r := reso.RegisterIn(c, func(*reso.Container, any) (any, error) {
			return 42, nil
		}).WithScope(reso.Unique)

		reso.Implements[NameService](r)

		_, err := reso.OptionalIn[NameService](c, nil)

		Expect(err).Should(HaveOccurred())

		var narrowing *reso.NarrowingError
		Expect(errors.As(err, &narrowing)).To(BeTrue())
	})

	It("should register forwarding entries under a name", func() {
		c := reso.New()

		r := reso.RegisterNamedIn(c, "impl", func(*reso.Container, any) (staticName, error) {
			return staticName("named-impl"), nil
		})

		reso.ImplementsNamed[NameService](r, "narrowed")

		service, err := reso.OptionalNamedIn[NameService](c, "narrowed", nil)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(service.Name()).To(Equal("named-impl"))
	})
})
