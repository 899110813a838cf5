package pkg

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer 发信客户端，Host 为空时视为未配置
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Enabled() bool {
	return m.cfg.Host != ""
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if !m.Enabled() {
		return fmt.Errorf("smtp not configured")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(msg)
}

// UpgradeNoticeHTML 免费额度用尽时的升级提醒邮件
func UpgradeNoticeHTML(limit int64) string {
	return fmt.Sprintf(`<p>Hi,</p><p>You have used all <b>%d</b> of your free generations on QuickAI.</p><p>Upgrade to premium to keep creating without limits.</p>`, limit)
}
