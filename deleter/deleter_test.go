package deleter_test

import (
	"errors"

	"code.cloudfoundry.org/lager"
	"code.cloudfoundry.org/lager/lagertest"

	"disfork/deleter"
	"disfork/githubclient"
	"disfork/githubclient/githubclientfakes"
	"disfork/metrics"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Coordinator", func() {
	var (
		fakeClient *githubclientfakes.FakeClient
		logger     *lagertest.TestLogger

		coordinator *deleter.Coordinator
		selected    []githubclient.Repository
	)

	repo := func(name string) githubclient.Repository {
		return githubclient.Repository{Owner: "some-user", Name: name, Fork: true}
	}

	BeforeEach(func() {
		fakeClient = &githubclientfakes.FakeClient{}
		logger = lagertest.NewTestLogger("deleter")

		emitter := metrics.BuildEmitter(logger, "", "test")
		coordinator = deleter.NewCoordinator(fakeClient, 3, emitter)

		selected = []githubclient.Repository{
			repo("first-fork"),
			repo("second-fork"),
			repo("third-fork"),
		}
	})

	It("deletes every selected repository", func() {
		report := coordinator.Delete(logger, selected, false)

		Expect(fakeClient.DeleteRepositoryCallCount()).To(Equal(3))
		Expect(report.Succeeded).To(HaveLen(3))
		Expect(report.Failed).To(BeEmpty())
		Expect(report.Err()).NotTo(HaveOccurred())
	})

	It("makes no network calls at all on a dry run", func() {
		report := coordinator.Delete(logger, selected, true)

		Expect(fakeClient.DeleteRepositoryCallCount()).To(BeZero())
		Expect(report.DryRun).To(BeTrue())
		Expect(report.WouldDelete).To(Equal(selected))
		Expect(report.Succeeded).To(BeEmpty())
		Expect(report.Err()).NotTo(HaveOccurred())
	})

	It("carries on past individual failures", func() {
		deleteErr := errors.New("must have admin rights")
		fakeClient.DeleteRepositoryStub = func(_ lager.Logger, owner, name string) error {
			if name == "second-fork" {
				return deleteErr
			}
			return nil
		}

		report := coordinator.Delete(logger, selected, false)

		Expect(fakeClient.DeleteRepositoryCallCount()).To(Equal(3))
		Expect(report.Succeeded).To(HaveLen(2))
		Expect(report.Failed).To(HaveKeyWithValue("some-user/second-fork", deleteErr))
		Expect(report.Err()).To(HaveOccurred())
	})

	It("reports nothing for an empty selection", func() {
		report := coordinator.Delete(logger, nil, false)

		Expect(fakeClient.DeleteRepositoryCallCount()).To(BeZero())
		Expect(report.Succeeded).To(BeEmpty())
		Expect(report.Failed).To(BeEmpty())
		Expect(report.Err()).NotTo(HaveOccurred())
	})
})
