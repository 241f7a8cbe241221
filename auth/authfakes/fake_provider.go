// This file was generated by counterfeiter
package authfakes

import (
	"sync"

	"code.cloudfoundry.org/lager"

	"disfork/auth"
)

type FakeProvider struct {
	TokenStub        func(logger lager.Logger) (string, error)
	tokenMutex       sync.RWMutex
	tokenArgsForCall []struct {
		logger lager.Logger
	}
	tokenReturns struct {
		result1 string
		result2 error
	}
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

func (fake *FakeProvider) Token(logger lager.Logger) (string, error) {
	fake.tokenMutex.Lock()
	fake.tokenArgsForCall = append(fake.tokenArgsForCall, struct {
		logger lager.Logger
	}{logger})
	fake.recordInvocation("Token", []interface{}{logger})
	fake.tokenMutex.Unlock()
	if fake.TokenStub != nil {
		return fake.TokenStub(logger)
	} else {
		return fake.tokenReturns.result1, fake.tokenReturns.result2
	}
}

func (fake *FakeProvider) TokenCallCount() int {
	fake.tokenMutex.RLock()
	defer fake.tokenMutex.RUnlock()
	return len(fake.tokenArgsForCall)
}

func (fake *FakeProvider) TokenArgsForCall(i int) lager.Logger {
	fake.tokenMutex.RLock()
	defer fake.tokenMutex.RUnlock()
	return fake.tokenArgsForCall[i].logger
}

func (fake *FakeProvider) TokenReturns(result1 string, result2 error) {
	fake.TokenStub = nil
	fake.tokenReturns = struct {
		result1 string
		result2 error
	}{result1, result2}
}

func (fake *FakeProvider) Reauthorize(logger lager.Logger) error {
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

func (fake *FakeProvider) ReauthorizeCallCount() int {
	fake.reauthorizeMutex.RLock()
	defer fake.reauthorizeMutex.RUnlock()
	return len(fake.reauthorizeArgsForCall)
}

func (fake *FakeProvider) ReauthorizeArgsForCall(i int) lager.Logger {
	fake.reauthorizeMutex.RLock()
	defer fake.reauthorizeMutex.RUnlock()
	return fake.reauthorizeArgsForCall[i].logger
}

func (fake *FakeProvider) ReauthorizeReturns(result1 error) {
	fake.ReauthorizeStub = nil
	fake.reauthorizeReturns = struct {
		result1 error
	}{result1}
}

func (fake *FakeProvider) Invocations() map[string][][]interface{} {
	fake.invocationsMutex.RLock()
	defer fake.invocationsMutex.RUnlock()
	return fake.invocations
}

func (fake *FakeProvider) recordInvocation(key string, args []interface{}) {
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

var _ auth.Provider = new(FakeProvider)
