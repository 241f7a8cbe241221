// This file was generated by counterfeiter
package netfakes

import (
	"sync"

	"code.cloudfoundry.org/lager"

	"disfork/net"
)

type FakeReauthorizer struct {
	ReauthorizeStub        func(logger lager.Logger) error
	reauthorizeMutex       sync.RWMutex
	reauthorizeArgsForCall []struct {
		logger lager.Logger
	}
	reauthorizeReturns struct {
		result1 error
	}
	invocations      map[string][][]interface{}
	invocationsMutex sync.RWMutex
}

func (fake *FakeReauthorizer) Reauthorize(logger lager.Logger) error {
	fake.reauthorizeMutex.Lock()
	fake.reauthorizeArgsForCall = append(fake.reauthorizeArgsForCall, struct {
		logger lager.Logger
	}{logger})
	fake.recordInvocation("Reauthorize", []interface{}{logger})
	fake.reauthorizeMutex.Unlock()
	if fake.ReauthorizeStub != nil {
		return fake.ReauthorizeStub(logger)
	} else {
		return fake.reauthorizeReturns.result1
	}
}

func (fake *FakeReauthorizer) ReauthorizeCallCount() int {
	fake.reauthorizeMutex.RLock()
	defer fake.reauthorizeMutex.RUnlock()
	return len(fake.reauthorizeArgsForCall)
}

func (fake *FakeReauthorizer) ReauthorizeArgsForCall(i int) lager.Logger {
	fake.reauthorizeMutex.RLock()
	defer fake.reauthorizeMutex.RUnlock()
	return fake.reauthorizeArgsForCall[i].logger
}

func (fake *FakeReauthorizer) ReauthorizeReturns(result1 error) {
	fake.ReauthorizeStub = nil
	fake.reauthorizeReturns = struct {
		result1 error
	}{result1}
}

func (fake *FakeReauthorizer) Invocations() map[string][][]interface{} {
	fake.invocationsMutex.RLock()
	defer fake.invocationsMutex.RUnlock()
	return fake.invocations
}

func (fake *FakeReauthorizer) recordInvocation(key string, args []interface{}) {
	fake.invocationsMutex.Lock()
	defer fake.invocationsMutex.Unlock()
	if fake.invocations == nil {
		fake.invocations = map[string][][]interface{}{}
	}
	if fake.invocations[key] == nil {
		fake.invocations[key] = [][]interface{}{}
	}
	fake.invocations[key] = append(fake.invocations[key], args)
}

var _ net.Reauthorizer = new(FakeReauthorizer)
