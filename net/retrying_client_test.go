package net_test

import (
	"bytes"
	"errors"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/lagertest"

	"disfork/net"
	"disfork/net/netfakes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("RetryingClient", func() {
	var (
		fakeClient       *netfakes.FakeClient
		fakeReauthorizer *netfakes.FakeReauthorizer
		fakeClock        *fakeclock.FakeClock
		logger           *lagertest.TestLogger

		client net.Client
	)

	BeforeEach(func() {
		fakeClient = &netfakes.FakeClient{}
		fakeReauthorizer = &netfakes.FakeReauthorizer{}
		fakeClock = fakeclock.NewFakeClock(time.Now())
		logger = lagertest.NewTestLogger("retrying-client")

		// backoff sleeps on the fake clock; advance it whenever something
		// starts waiting
		go func() {
			for {
				fakeClock.WaitForWatcherAndIncrement(2 * time.Second)
			}
		}()

		client = net.NewRetryingClient(fakeClient, fakeReauthorizer, fakeClock, logger)
	})

	response := func(status int) *http.Response {
		return &http.Response{
			StatusCode: status,
			Body:       ioutil.NopCloser(strings.NewReader("")),
		}
	}

	It("proxies requests to the underlying client", func() {
		body := strings.NewReader("My Special Body")
		request, _ := http.NewRequest("POST", "http://example.com", body)
		request.Header.Add("My-Special", "Header")

		expectedResponse := response(http.StatusOK)
		fakeClient.DoReturns(expectedResponse, nil)

		resp, err := client.Do(request)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp).To(BeIdenticalTo(expectedResponse))

		Expect(fakeClient.DoCallCount()).To(Equal(1))

		actualRequest := fakeClient.DoArgsForCall(0)
		Expect(actualRequest.URL).To(Equal(request.URL))
		Expect(actualRequest.Header).To(Equal(request.Header))
		Expect(actualRequest.Method).To(Equal(request.Method))

		buf := bytes.NewBuffer([]byte{})
		buf.ReadFrom(actualRequest.Body)
		Expect(buf.Bytes()).To(Equal([]byte("My Special Body")))
	})

	It("retries when the first requests fail at the transport level", func() {
		doCalls := 0
		expectedResponse := response(http.StatusOK)

		fakeClient.DoStub = func(req *http.Request) (*http.Response, error) {
			doCalls++
			if doCalls < 4 {
				return nil, errors.New("connection reset")
			}
			return expectedResponse, nil
		}

		request, _ := http.NewRequest("GET", "http://example.com", nil)

		resp, err := client.Do(request)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp).To(BeIdenticalTo(expectedResponse))
		Expect(fakeClient.DoCallCount()).To(Equal(4))
	})

	It("gives up once the retries are exhausted", func() {
		fakeClient.DoReturns(nil, errors.New("connection reset"))

		request, _ := http.NewRequest("GET", "http://example.com", nil)

		_, err := client.Do(request)
		Expect(err).To(MatchError(net.ErrRetryExhausted))
		Expect(fakeClient.DoCallCount()).To(Equal(4))
	})

	It("retries server errors", func() {
		doCalls := 0
		expectedResponse := response(http.StatusOK)

		fakeClient.DoStub = func(req *http.Request) (*http.Response, error) {
			doCalls++
			if doCalls == 1 {
				return response(http.StatusBadGateway), nil
			}
			return expectedResponse, nil
		}

		request, _ := http.NewRequest("GET", "http://example.com", nil)

		resp, err := client.Do(request)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp).To(BeIdenticalTo(expectedResponse))
		Expect(fakeClient.DoCallCount()).To(Equal(2))
	})

	It("does not retry client errors", func() {
		fakeClient.DoReturns(response(http.StatusNotFound), nil)

		request, _ := http.NewRequest("GET", "http://example.com", nil)

		resp, err := client.Do(request)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		Expect(fakeClient.DoCallCount()).To(Equal(1))
	})

	Context("when a request comes back 401", func() {
		It("reauthorizes once and replays the request", func() {
			doCalls := 0
			expectedResponse := response(http.StatusOK)

			fakeClient.DoStub = func(req *http.Request) (*http.Response, error) {
				doCalls++
				if doCalls == 1 {
					return response(http.StatusUnauthorized), nil
				}
				return expectedResponse, nil
			}

			request, _ := http.NewRequest("GET", "http://example.com", nil)

			resp, err := client.Do(request)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(BeIdenticalTo(expectedResponse))
			Expect(fakeReauthorizer.ReauthorizeCallCount()).To(Equal(1))
			Expect(fakeClient.DoCallCount()).To(Equal(2))
		})

		It("returns the second 401 as-is", func() {
			fakeClient.DoReturns(response(http.StatusUnauthorized), nil)

			request, _ := http.NewRequest("GET", "http://example.com", nil)

			resp, err := client.Do(request)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(fakeReauthorizer.ReauthorizeCallCount()).To(Equal(1))
			Expect(fakeClient.DoCallCount()).To(Equal(2))
		})

		It("fails fast when reauthorization fails", func() {
			fakeClient.DoReturns(response(http.StatusUnauthorized), nil)
			fakeReauthorizer.ReauthorizeReturns(errors.New("token rejected"))

			request, _ := http.NewRequest("GET", "http://example.com", nil)

			_, err := client.Do(request)
			Expect(err).To(MatchError("token rejected"))
			Expect(fakeClient.DoCallCount()).To(Equal(1))
		})
	})
})
