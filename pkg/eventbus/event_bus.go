package eventbus

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/sitecms/pkg/serrors"
)

type Subscriber struct {
	Handler interface{}
	Async   bool
}

type EventBus interface {
	Publish(args ...interface{})
	Subscribe(handler interface{})
	SubscribeAsync(handler interface{})
	Unsubscribe(handler interface{})
	Clear()
	SubscribersCount() int
}

type EventBusWithError interface {
	EventBus
	PublishE(args ...any) error
	Wait()
}

var (
	ErrNoSubscribers        = serrors.NewError("EVENTBUS_NO_SUBSCRIBERS", "no matching subscribers", "")
	ErrInvalidHandlerReturn = serrors.NewError("EVENTBUS_INVALID_HANDLER_RETURN", "invalid handler return signature", "")
)

type publisherImpl struct {
	log         *logrus.Logger
	mu          sync.RWMutex
	subscribers []Subscriber
	inflight    sync.WaitGroup
}

func NewEventPublisher(log *logrus.Logger) EventBus {
	return &publisherImpl{log: log}
}

// MatchSignature reports whether handler can be called with args.
func MatchSignature(handler interface{}, args []interface{}) bool {
	t := reflect.TypeOf(handler)
	if t.Kind() != reflect.Func {
		return false
	}

	if t.NumIn() != len(args) {
		return false
	}

	for i, arg := range args {
		paramType := t.In(i)

		if arg == nil {
			if paramType.Kind() != reflect.Interface && paramType.Kind() != reflect.Ptr {
				return false
			}
			continue
		}

		argType := reflect.TypeOf(arg)
		if paramType.Kind() == reflect.Interface {
			if !argType.Implements(paramType) {
				return false
			}
			continue
		}

		if !argType.AssignableTo(paramType) {
			return false
		}
	}

	return true
}

func (p *publisherImpl) snapshot() []Subscriber {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.subscribers)
}

func values(args []interface{}) []reflect.Value {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = reflect.ValueOf(arg)
	}
	return in
}

// call invokes handler, converting a panic into an error.
func call(handler interface{}, in []reflect.Value) (out []reflect.Value, err error) {
	v := reflect.ValueOf(handler)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("eventbus: handler %s panicked: %v", v.Type().String(), r)
		}
	}()
	return v.Call(in), nil
}

// Publish calls every matching handler. Async handlers run on their own
// goroutine; panics are logged and never reach the publisher.
func (p *publisherImpl) Publish(args ...interface{}) {
	in := values(args)

	handled := false
	for _, subscriber := range p.snapshot() {
		if !MatchSignature(subscriber.Handler, args) {
			continue
		}
		if subscriber.Async {
			handled = true
			p.inflight.Add(1)
			go func(h interface{}) {
				defer p.inflight.Done()
				if _, err := call(h, in); err != nil && p.log != nil {
					p.log.Errorf("%v (args %v)", err, args)
				}
			}(subscriber.Handler)
			continue
		}
		if _, err := call(subscriber.Handler, in); err != nil {
			if p.log != nil {
				p.log.Errorf("%v (args %v)", err, args)
			}
			continue
		}
		handled = true
	}

	if !handled && p.log != nil {
		p.log.Warnf("eventbus.Publish: no matching subscribers for event with args: %v", args)
	}
}

// PublishE calls every matching handler synchronously and joins their errors.
func (p *publisherImpl) PublishE(args ...any) error {
	in := values(args)

	handled := false
	var errs []error
	for _, subscriber := range p.snapshot() {
		if !MatchSignature(subscriber.Handler, args) {
			continue
		}
		handled = true

		out, err := call(subscriber.Handler, in)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(out) == 0 {
			continue
		}
		name := reflect.TypeOf(subscriber.Handler).String()
		if len(out) != 1 {
			errs = append(errs, fmt.Errorf("%w: handler %s returned %d values", ErrInvalidHandlerReturn, name, len(out)))
			continue
		}
		ret := out[0]
		if ret.Type() != reflect.TypeOf((*error)(nil)).Elem() {
			errs = append(errs, fmt.Errorf("%w: handler %s return type is %s", ErrInvalidHandlerReturn, name, ret.Type().String()))
			continue
		}
		if !ret.IsNil() {
			errs = append(errs, ret.Interface().(error))
		}
	}

	if !handled {
		return ErrNoSubscribers
	}
	return errors.Join(errs...)
}

// Wait blocks until every async handler started so far has returned.
func (p *publisherImpl) Wait() {
	p.inflight.Wait()
}

func (p *publisherImpl) subscribe(handler interface{}, async bool) {
	if reflect.TypeOf(handler).Kind() != reflect.Func {
		panic("handler must be a function")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, Subscriber{Handler: handler, Async: async})
}

func (p *publisherImpl) Subscribe(handler interface{}) {
	p.subscribe(handler, false)
}

// SubscribeAsync registers a fire-and-forget handler.
func (p *publisherImpl) SubscribeAsync(handler interface{}) {
	p.subscribe(handler, true)
}

func (p *publisherImpl) Unsubscribe(handler interface{}) {
	target := reflect.ValueOf(handler).Pointer()
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, subscriber := range p.subscribers {
		if reflect.ValueOf(subscriber.Handler).Pointer() == target {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			return
		}
	}
}

func (p *publisherImpl) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = nil
}

func (p *publisherImpl) SubscribersCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscribers)
}
