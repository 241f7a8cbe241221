// This file was generated by counterfeiter
package githubclientfakes

import (
	"sync"

	"code.cloudfoundry.org/lager"

	"disfork/githubclient"
)

type FakeClient struct {
	CurrentUserStub        func(logger lager.Logger) (string, error)
	currentUserMutex       sync.RWMutex
	currentUserArgsForCall []struct {
		logger lager.Logger
	}
	currentUserReturns struct {
		result1 string
		result2 error
	}
	AccountTypeStub        func(logger lager.Logger, account string) (string, error)
	accountTypeMutex       sync.RWMutex
	accountTypeArgsForCall []struct {
		logger  lager.Logger
		account string
	}
	accountTypeReturns struct {
		result1 string
		result2 error
	}
	ListForksStub        func(logger lager.Logger, account, accountType string, page int) ([]githubclient.Repository, int, error)
	listForksMutex       sync.RWMutex
	listForksArgsForCall []struct {
		logger      lager.Logger
		account     string
		accountType string
		page        int
	}
	listForksReturns struct {
		result1 []githubclient.Repository
		result2 int
		result3 error
	}
	GetRepositoryStub        func(logger lager.Logger, owner, name string) (githubclient.Repository, error)
	getRepositoryMutex       sync.RWMutex
	getRepositoryArgsForCall []struct {
		logger lager.Logger
		owner  string
		name   string
	}
	getRepositoryReturns struct {
		result1 githubclient.Repository
		result2 error
	}
	CompareRefsStub        func(logger lager.Logger, owner, repo, base, head string) (githubclient.Comparison, error)
	compareRefsMutex       sync.RWMutex
	compareRefsArgsForCall []struct {
		logger lager.Logger
		owner  string
		repo   string
		base   string
		head   string
	}
	compareRefsReturns struct {
		result1 githubclient.Comparison
		result2 error
	}
	DeleteRepositoryStub        func(logger lager.Logger, owner, name string) error
	deleteRepositoryMutex       sync.RWMutex
	deleteRepositoryArgsForCall []struct {
		logger lager.Logger
		owner  string
		name   string
	}
	deleteRepositoryReturns struct {
		result1 error
	}
	invocations      map[string][][]interface{}
	invocationsMutex sync.RWMutex
}

func (fake *FakeClient) CurrentUser(logger lager.Logger) (string, error) {
	fake.currentUserMutex.Lock()
	fake.currentUserArgsForCall = append(fake.currentUserArgsForCall, struct {
		logger lager.Logger
	}{logger})
	fake.recordInvocation("CurrentUser", []interface{}{logger})
	fake.currentUserMutex.Unlock()
	if fake.CurrentUserStub != nil {
		return fake.CurrentUserStub(logger)
	} else {
		return fake.currentUserReturns.result1, fake.currentUserReturns.result2
	}
}

func (fake *FakeClient) CurrentUserCallCount() int {
	fake.currentUserMutex.RLock()
	defer fake.currentUserMutex.RUnlock()
	return len(fake.currentUserArgsForCall)
}

func (fake *FakeClient) CurrentUserReturns(result1 string, result2 error) {
	fake.CurrentUserStub = nil
	fake.currentUserReturns = struct {
		result1 string
		result2 error
	}{result1, result2}
}

func (fake *FakeClient) AccountType(logger lager.Logger, account string) (string, error) {
	fake.accountTypeMutex.Lock()
	fake.accountTypeArgsForCall = append(fake.accountTypeArgsForCall, struct {
		logger  lager.Logger
		account string
	}{logger, account})
	fake.recordInvocation("AccountType", []interface{}{logger, account})
	fake.accountTypeMutex.Unlock()
	if fake.AccountTypeStub != nil {
		return fake.AccountTypeStub(logger, account)
	} else {
		return fake.accountTypeReturns.result1, fake.accountTypeReturns.result2
	}
}

func (fake *FakeClient) AccountTypeCallCount() int {
	fake.accountTypeMutex.RLock()
	defer fake.accountTypeMutex.RUnlock()
	return len(fake.accountTypeArgsForCall)
}

func (fake *FakeClient) AccountTypeArgsForCall(i int) (lager.Logger, string) {
	fake.accountTypeMutex.RLock()
	defer fake.accountTypeMutex.RUnlock()
	return fake.accountTypeArgsForCall[i].logger, fake.accountTypeArgsForCall[i].account
}

func (fake *FakeClient) AccountTypeReturns(result1 string, result2 error) {
	fake.AccountTypeStub = nil
	fake.accountTypeReturns = struct {
		result1 string
		result2 error
	}{result1, result2}
}

func (fake *FakeClient) ListForks(logger lager.Logger, account, accountType string, page int) ([]githubclient.Repository, int, error) {
	fake.listForksMutex.Lock()
	fake.listForksArgsForCall = append(fake.listForksArgsForCall, struct {
		logger      lager.Logger
		account     string
		accountType string
		page        int
	}{logger, account, accountType, page})
	fake.recordInvocation("ListForks", []interface{}{logger, account, accountType, page})
	fake.listForksMutex.Unlock()
	if fake.ListForksStub != nil {
		return fake.ListForksStub(logger, account, accountType, page)
	} else {
		return fake.listForksReturns.result1, fake.listForksReturns.result2, fake.listForksReturns.result3
	}
}

func (fake *FakeClient) ListForksCallCount() int {
	fake.listForksMutex.RLock()
	defer fake.listForksMutex.RUnlock()
	return len(fake.listForksArgsForCall)
}

func (fake *FakeClient) ListForksArgsForCall(i int) (lager.Logger, string, string, int) {
	fake.listForksMutex.RLock()
	defer fake.listForksMutex.RUnlock()
	return fake.listForksArgsForCall[i].logger, fake.listForksArgsForCall[i].account, fake.listForksArgsForCall[i].accountType, fake.listForksArgsForCall[i].page
}

func (fake *FakeClient) ListForksReturns(result1 []githubclient.Repository, result2 int, result3 error) {
	fake.ListForksStub = nil
	fake.listForksReturns = struct {
		result1 []githubclient.Repository
		result2 int
		result3 error
	}{result1, result2, result3}
}

func (fake *FakeClient) GetRepository(logger lager.Logger, owner, name string) (githubclient.Repository, error) {
	fake.getRepositoryMutex.Lock()
	fake.getRepositoryArgsForCall = append(fake.getRepositoryArgsForCall, struct {
		logger lager.Logger
		owner  string
		name   string
	}{logger, owner, name})
	fake.recordInvocation("GetRepository", []interface{}{logger, owner, name})
	fake.getRepositoryMutex.Unlock()
	if fake.GetRepositoryStub != nil {
		return fake.GetRepositoryStub(logger, owner, name)
	} else {
		return fake.getRepositoryReturns.result1, fake.getRepositoryReturns.result2
	}
}

func (fake *FakeClient) GetRepositoryCallCount() int {
	fake.getRepositoryMutex.RLock()
	defer fake.getRepositoryMutex.RUnlock()
	return len(fake.getRepositoryArgsForCall)
}

func (fake *FakeClient) GetRepositoryArgsForCall(i int) (lager.Logger, string, string) {
	fake.getRepositoryMutex.RLock()
	defer fake.getRepositoryMutex.RUnlock()
	return fake.getRepositoryArgsForCall[i].logger, fake.getRepositoryArgsForCall[i].owner, fake.getRepositoryArgsForCall[i].name
}

func (fake *FakeClient) GetRepositoryReturns(result1 githubclient.Repository, result2 error) {
	fake.GetRepositoryStub = nil
	fake.getRepositoryReturns = struct {
		result1 githubclient.Repository
		result2 error
	}{result1, result2}
}

func (fake *FakeClient) CompareRefs(logger lager.Logger, owner, repo, base, head string) (githubclient.Comparison, error) {
	fake.compareRefsMutex.Lock()
	fake.compareRefsArgsForCall = append(fake.compareRefsArgsForCall, struct {
		logger lager.Logger
		owner  string
		repo   string
		base   string
		head   string
	}{logger, owner, repo, base, head})
	fake.recordInvocation("CompareRefs", []interface{}{logger, owner, repo, base, head})
	fake.compareRefsMutex.Unlock()
	if fake.CompareRefsStub != nil {
		return fake.CompareRefsStub(logger, owner, repo, base, head)
	} else {
		return fake.compareRefsReturns.result1, fake.compareRefsReturns.result2
	}
}

func (fake *FakeClient) CompareRefsCallCount() int {
	fake.compareRefsMutex.RLock()
	defer fake.compareRefsMutex.RUnlock()
	return len(fake.compareRefsArgsForCall)
}

func (fake *FakeClient) CompareRefsArgsForCall(i int) (lager.Logger, string, string, string, string) {
	fake.compareRefsMutex.RLock()
	defer fake.compareRefsMutex.RUnlock()
	return fake.compareRefsArgsForCall[i].logger, fake.compareRefsArgsForCall[i].owner, fake.compareRefsArgsForCall[i].repo, fake.compareRefsArgsForCall[i].base, fake.compareRefsArgsForCall[i].head
}

func (fake *FakeClient) CompareRefsReturns(result1 githubclient.Comparison, result2 error) {
	fake.CompareRefsStub = nil
	fake.compareRefsReturns = struct {
		result1 githubclient.Comparison
		result2 error
	}{result1, result2}
}

func (fake *FakeClient) DeleteRepository(logger lager.Logger, owner, name string) error {
	fake.deleteRepositoryMutex.Lock()
	fake.deleteRepositoryArgsForCall = append(fake.deleteRepositoryArgsForCall, struct {
		logger lager.Logger
		owner  string
		name   string
	}{logger, owner, name})
	fake.recordInvocation("DeleteRepository", []interface{}{logger, owner, name})
	fake.deleteRepositoryMutex.Unlock()
	if fake.DeleteRepositoryStub != nil {
		return fake.DeleteRepositoryStub(logger, owner, name)
	} else {
		return fake.deleteRepositoryReturns.result1
	}
}

func (fake *FakeClient) DeleteRepositoryCallCount() int {
	fake.deleteRepositoryMutex.RLock()
	defer fake.deleteRepositoryMutex.RUnlock()
	return len(fake.deleteRepositoryArgsForCall)
}

func (fake *FakeClient) DeleteRepositoryArgsForCall(i int) (lager.Logger, string, string) {
	fake.deleteRepositoryMutex.RLock()
	defer fake.deleteRepositoryMutex.RUnlock()
	return fake.deleteRepositoryArgsForCall[i].logger, fake.deleteRepositoryArgsForCall[i].owner, fake.deleteRepositoryArgsForCall[i].name
}

func (fake *FakeClient) DeleteRepositoryReturns(result1 error) {
	fake.DeleteRepositoryStub = nil
	fake.deleteRepositoryReturns = struct {
		result1 error
	}{result1}
}

func (fake *FakeClient) Invocations() map[string][][]interface{} {
	fake.invocationsMutex.RLock()
	defer fake.invocationsMutex.RUnlock()
	return fake.invocations
}

func (fake *FakeClient) recordInvocation(key string, args []interface{}) {
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

var _ githubclient.Client = new(FakeClient)
