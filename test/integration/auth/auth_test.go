// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/authcore/internal/auth"
)

func uniqueEmail() string {
	return "user-" + uuid.NewString() + "@example.com"
}

var _ = Describe("Account lifecycle", func() {
	Describe("through the service", func() {
		It("signs in, authenticates and signs out", func() {
			email := uniqueEmail()
			id, err := env.Service.CreateAccount(env.ctx, email, "hunter2")
			Expect(err).NotTo(HaveOccurred())

			session, err := env.Service.SignIn(env.ctx, email, "hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(session.CredentialID.String()).To(Equal(id))
			Expect(session.ExpiresAt).To(BeTemporally("~", session.CreatedAt.Add(auth.DefaultSessionTTL), time.Second))

			got, err := env.Service.Authenticate(env.ctx, session.ID.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(session.ID))

			Expect(env.Service.SignOut(env.ctx, session.ID.String())).To(Succeed())

			_, err = env.Service.Authenticate(env.ctx, session.ID.String())
			Expect(auth.KindOf(err)).To(Equal(auth.KindInvalidCredentials))
		})

		It("rejects a second account for the same email", func() {
			email := uniqueEmail()
			_, err := env.Service.CreateAccount(env.ctx, email, "pw")
			Expect(err).NotTo(HaveOccurred())

			_, err = env.Service.CreateAccount(env.ctx, email, "other")
			Expect(auth.KindOf(err)).To(Equal(auth.KindInvalidCredentials))
		})

		It("gives the same answer for a wrong password and an unknown email", func() {
			email := uniqueEmail()
			_, err := env.Service.CreateAccount(env.ctx, email, "pw")
			Expect(err).NotTo(HaveOccurred())

			_, wrongPassword := env.Service.SignIn(env.ctx, email, "wrong")
			_, unknownEmail := env.Service.SignIn(env.ctx, uniqueEmail(), "pw")
			Expect(auth.KindOf(wrongPassword)).To(Equal(auth.KindInvalidCredentials))
			Expect(auth.KindOf(unknownEmail)).To(Equal(auth.KindInvalidCredentials))
			Expect(wrongPassword.Error()).To(Equal(unknownEmail.Error()))
		})

		It("expires sessions after their lifetime", func() {
			email := uniqueEmail()
			_, err := env.Service.CreateAccount(env.ctx, email, "pw")
			Expect(err).NotTo(HaveOccurred())
			session, err := env.Service.SignInFor(env.ctx, email, "pw", time.Minute)
			Expect(err).NotTo(HaveOccurred())

			env.clock.Advance(50 * time.Second)
			_, err = env.Service.Authenticate(env.ctx, session.ID.String())
			Expect(err).NotTo(HaveOccurred())

			env.clock.Advance(15 * time.Second)
			_, err = env.Service.Authenticate(env.ctx, session.ID.String())
			Expect(auth.KindOf(err)).To(Equal(auth.KindInvalidCredentials))
		})

		It("closes an account and its sessions", func() {
			email := uniqueEmail()
			id, err := env.Service.CreateAccount(env.ctx, email, "pw")
			Expect(err).NotTo(HaveOccurred())
			first, err := env.Service.SignIn(env.ctx, email, "pw")
			Expect(err).NotTo(HaveOccurred())
			second, err := env.Service.SignIn(env.ctx, email, "pw")
			Expect(err).NotTo(HaveOccurred())

			Expect(env.Service.CloseAccount(env.ctx, id)).To(Succeed())

			for _, s := range []*auth.Session{first, second} {
				_, err := env.Service.Authenticate(env.ctx, s.ID.String())
				Expect(auth.KindOf(err)).To(Equal(auth.KindInvalidCredentials))
			}
			_, err = env.Service.SignIn(env.ctx, email, "pw")
			Expect(auth.KindOf(err)).To(Equal(auth.KindInvalidCredentials))

			_, err = env.Service.CreateAccount(env.ctx, email, "pw")
			Expect(auth.KindOf(err)).To(Equal(auth.KindInvalidCredentials), "closed accounts keep their email")
		})
	})

	Describe("over gRPC", func() {
		It("preserves error kinds across the wire", func() {
			email := uniqueEmail()
			_, err := env.Remote.CreateAccount(env.ctx, email, "pw")
			Expect(err).NotTo(HaveOccurred())

			session, err := env.Remote.SignInFor(env.ctx, email, "pw", 90*time.Second)
			Expect(err).NotTo(HaveOccurred())
			Expect(session.ExpiresAt.Sub(session.CreatedAt)).To(BeNumerically("~", 90*time.Second, time.Second))

			got, err := env.Remote.Authenticate(env.ctx, session.ID.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got.CredentialID).To(Equal(session.CredentialID))

			_, err = env.Remote.Authenticate(env.ctx, "not-a-session")
			Expect(auth.KindOf(err)).To(Equal(auth.KindInvalidInput))
			Expect(auth.Message(err)).To(Equal(auth.MsgInvalidSessionID))

			_, err = env.Remote.SignIn(env.ctx, email, "wrong")
			Expect(auth.KindOf(err)).To(Equal(auth.KindInvalidCredentials))

			Expect(env.Remote.SignOut(env.ctx, session.ID.String())).To(Succeed())
			_, err = env.Remote.Authenticate(env.ctx, session.ID.String())
			Expect(auth.KindOf(err)).To(Equal(auth.KindInvalidCredentials))
		})

		It("reports serving", func() {
			Expect(env.Remote.Ping(env.ctx)).To(Succeed())
		})
	})

	DescribeTable("cookie sessions over HTTP",
		func(baseURL func() string) {
			jar, err := cookiejar.New(nil)
			Expect(err).NotTo(HaveOccurred())
			client := &http.Client{Jar: jar, Timeout: 10 * time.Second}
			email := uniqueEmail()
			body := `{"email":"` + email + `","password":"pw"}`

			resp, err := client.Post(baseURL()+"/accounts", "application/json", strings.NewReader(body))
			Expect(err).NotTo(HaveOccurred())
			var account struct {
				ID string `json:"id"`
			}
			Expect(json.NewDecoder(resp.Body).Decode(&account)).To(Succeed())
			_ = resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			resp, err = client.Post(baseURL()+"/sessions", "application/json", strings.NewReader(body))
			Expect(err).NotTo(HaveOccurred())
			_ = resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			resp, err = client.Get(baseURL() + "/session")
			Expect(err).NotTo(HaveOccurred())
			var current struct {
				CredentialID string `json:"credential_id"`
			}
			Expect(json.NewDecoder(resp.Body).Decode(&current)).To(Succeed())
			_ = resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(current.CredentialID).To(Equal(account.ID))

			req, err := http.NewRequest(http.MethodDelete, baseURL()+"/session", nil)
			Expect(err).NotTo(HaveOccurred())
			resp, err = client.Do(req)
			Expect(err).NotTo(HaveOccurred())
			_ = resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

			resp, err = client.Get(baseURL() + "/session")
			Expect(err).NotTo(HaveOccurred())
			_ = resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		},
		Entry("served in process", func() string { return env.Web.URL }),
		Entry("served by the gateway", func() string { return env.Gateway.URL }),
	)
})
