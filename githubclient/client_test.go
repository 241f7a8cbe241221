package githubclient_test

import (
	"fmt"
	"net/http"
	"time"

	"code.cloudfoundry.org/lager/lagertest"

	"disfork/githubclient"
	"disfork/metrics"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Client", func() {
	var (
		server *ghttp.Server
		logger *lagertest.TestLogger

		client githubclient.Client
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		logger = lagertest.NewTestLogger("github-client")

		emitter := metrics.BuildEmitter(logger, "", "test")
		client = githubclient.NewClient(server.URL(), &http.Client{}, emitter)
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("CurrentUser", func() {
		It("returns the login of the authenticated user", func() {
			server.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/user"),
					ghttp.VerifyHeaderKV("Accept", "application/vnd.github+json"),
					ghttp.RespondWith(http.StatusOK, `{"login": "some-user", "type": "User"}`),
				),
			)

			login, err := client.CurrentUser(logger)
			Expect(err).NotTo(HaveOccurred())
			Expect(login).To(Equal("some-user"))
		})

		It("returns an error on unexpected statuses", func() {
			server.AppendHandlers(
				ghttp.RespondWith(http.StatusInternalServerError, ""),
			)

			_, err := client.CurrentUser(logger)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("AccountType", func() {
		It("returns the lowercased account type", func() {
			server.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/users/some-org"),
					ghttp.RespondWith(http.StatusOK, `{"login": "some-org", "type": "Organization"}`),
				),
			)

			accountType, err := client.AccountType(logger, "some-org")
			Expect(err).NotTo(HaveOccurred())
			Expect(accountType).To(Equal("organization"))
		})

		It("returns ErrAccountNotFound when the account does not exist", func() {
			server.AppendHandlers(
				ghttp.RespondWith(http.StatusNotFound, `{"message": "Not Found"}`),
			)

			_, err := client.AccountType(logger, "ghost")
			Expect(err).To(MatchError(githubclient.ErrAccountNotFound))
		})
	})

	Describe("ListForks", func() {
		It("lists a user's repositories and keeps only the forks", func() {
			server.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/users/some-user/repos", "per_page=100&page=1"),
					ghttp.RespondWith(http.StatusOK, `[
						{"id": 1, "name": "original", "fork": false, "owner": {"login": "some-user"}},
						{"id": 2, "name": "forked", "fork": true, "owner": {"login": "some-user"}, "default_branch": "main", "stargazers_count": 3}
					]`),
				),
			)

			forks, nextPage, err := client.ListForks(logger, "some-user", "user", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(nextPage).To(BeZero())

			Expect(forks).To(HaveLen(1))
			Expect(forks[0].FullName()).To(Equal("some-user/forked"))
			Expect(forks[0].DefaultBranch).To(Equal("main"))
			Expect(forks[0].Stargazers).To(Equal(3))
		})

		It("lists through the orgs endpoint for organizations", func() {
			server.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/orgs/some-org/repos", "per_page=100&page=1"),
					ghttp.RespondWith(http.StatusOK, `[]`),
				),
			)

			forks, _, err := client.ListForks(logger, "some-org", "organization", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(forks).To(BeEmpty())
		})

		It("reports the next page from the Link header", func() {
			linkHeader := http.Header{}
			linkHeader.Set("Link", fmt.Sprintf(
				`<%s/users/some-user/repos?per_page=100&page=2>; rel="next", <%s/users/some-user/repos?per_page=100&page=3>; rel="last"`,
				server.URL(), server.URL(),
			))

			server.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/users/some-user/repos", "per_page=100&page=1"),
					ghttp.RespondWith(http.StatusOK, `[]`, linkHeader),
				),
			)

			_, nextPage, err := client.ListForks(logger, "some-user", "user", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(nextPage).To(Equal(2))
		})

		It("returns ErrAccountNotFound when the account does not exist", func() {
			server.AppendHandlers(
				ghttp.RespondWith(http.StatusNotFound, `{"message": "Not Found"}`),
			)

			_, _, err := client.ListForks(logger, "ghost", "user", 1)
			Expect(err).To(MatchError(githubclient.ErrAccountNotFound))
		})
	})

	Describe("GetRepository", func() {
		It("returns the repository with its parent", func() {
			pushed := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)

			server.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/repos/some-user/forked"),
					ghttp.RespondWith(http.StatusOK, fmt.Sprintf(`{
						"id": 2,
						"name": "forked",
						"fork": true,
						"owner": {"login": "some-user"},
						"default_branch": "main",
						"pushed_at": %q,
						"parent": {
							"id": 1,
							"name": "forked",
							"owner": {"login": "upstream"},
							"default_branch": "master"
						}
					}`, pushed.Format(time.RFC3339)),
					),
				),
			)

			repo, err := client.GetRepository(logger, "some-user", "forked")
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.PushedAt).To(BeTemporally("==", pushed))
			Expect(repo.Parent).NotTo(BeNil())
			Expect(repo.Parent.FullName()).To(Equal("upstream/forked"))
			Expect(repo.Parent.DefaultBranch).To(Equal("master"))
		})

		It("returns ErrNotFound when the repository is gone", func() {
			server.AppendHandlers(
				ghttp.RespondWith(http.StatusNotFound, `{"message": "Not Found"}`),
			)

			_, err := client.GetRepository(logger, "some-user", "gone")
			Expect(err).To(MatchError(githubclient.ErrNotFound))
		})
	})

	Describe("CompareRefs", func() {
		It("returns the commit counts between the two refs", func() {
			server.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest("GET", "/repos/upstream/forked/compare/master...some-user:main"),
					ghttp.RespondWith(http.StatusOK, `{"ahead_by": 2, "behind_by": 17, "status": "diverged"}`),
				),
			)

			comparison, err := client.CompareRefs(logger, "upstream", "forked", "master", "some-user:main")
			Expect(err).NotTo(HaveOccurred())
			Expect(comparison.AheadBy).To(Equal(2))
			Expect(comparison.BehindBy).To(Equal(17))
			Expect(comparison.Status).To(Equal(githubclient.StatusDiverged))
		})

		It("returns ErrNotFound when the base repository is gone", func() {
			server.AppendHandlers(
				ghttp.RespondWith(http.StatusNotFound, `{"message": "Not Found"}`),
			)

			_, err := client.CompareRefs(logger, "upstream", "forked", "master", "some-user:main")
			Expect(err).To(MatchError(githubclient.ErrNotFound))
		})
	})

	Describe("DeleteRepository", func() {
		It("deletes the repository", func() {
			server.AppendHandlers(
				ghttp.CombineHandlers(
					ghttp.VerifyRequest("DELETE", "/repos/some-user/forked"),
					ghttp.RespondWith(http.StatusNoContent, ""),
				),
			)

			err := client.DeleteRepository(logger, "some-user", "forked")
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns ErrForbidden when the token may not delete", func() {
			server.AppendHandlers(
				ghttp.RespondWith(http.StatusForbidden, `{"message": "Must have admin rights"}`),
			)

			err := client.DeleteRepository(logger, "some-user", "forked")
			Expect(err).To(MatchError(githubclient.ErrForbidden))
		})

		It("returns ErrNotFound when the repository is already gone", func() {
			server.AppendHandlers(
				ghttp.RespondWith(http.StatusNotFound, `{"message": "Not Found"}`),
			)

			err := client.DeleteRepository(logger, "some-user", "forked")
			Expect(err).To(MatchError(githubclient.ErrNotFound))
		})
	})
})
