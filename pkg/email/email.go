package email

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"SiteOK/config"
)

// Send 发送一封纯文本邮件。SMTP 未配置时静默返回错误，由调用方决定是否降级。
func Send(to, subject, body string) error {
	return send(to, subject, body, nil)
}

func send(to, subject, body string, extraHeaders []string) error {
	cfg := config.Cfg
	if cfg.SMTPHost == "" {
		return fmt.Errorf("smtp is not configured")
	}

	message := buildMessage(cfg.SMTPFrom, to, subject, body, extraHeaders)
	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	fromAddr := parseAddress(cfg.SMTPFrom)
	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)

	client, err := smtpClient(addr, cfg.SMTPHost, cfg.SMTPPort)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(fromAddr); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

// SendApprovalRequested 通知项目管理员有新的补卡日期申请待审批。
func SendApprovalRequested(to, projectCode, userName, requestedDate string) error {
	subject := "SiteOK: new date request for project " + projectCode
	body := userName + " requested approval to log attendance for " + requestedDate +
		" on project " + projectCode + ".\nOpen the admin dashboard to approve or reject it."
	return Send(to, subject, body)
}

// SendProjectResetCode 发送项目密码重置的 6 位验证码。
func SendProjectResetCode(to, projectName, code string) error {
	subject := "SiteOK: password reset code for " + projectName
	body := "Your password reset code is: " + code +
		fmt.Sprintf("\nThe code expires in %d minutes.", config.Cfg.ResetTokenExpireMinutes)
	return Send(to, subject, body)
}

// SendContactQuery 把工人端的咨询转到支持邮箱，Reply-To 指回提问者方便直接回复。
func SendContactQuery(userEmail, query string) error {
	to := config.Cfg.SMTPUsername
	if to == "" {
		return fmt.Errorf("smtp is not configured")
	}

	subject := "SiteOK: new query from an app user"
	body := "From: " + userEmail + "\n\n" + query +
		"\n\nReply directly to this email to respond to the user."
	return send(to, subject, body, []string{"Reply-To: " + userEmail})
}

func smtpClient(addr string, host string, port int) (*smtp.Client, error) {
	// 465 走隐式 TLS，其余端口尝试 STARTTLS
	if port == 465 {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, host)
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func buildMessage(from string, to string, subject string, body string, extraHeaders []string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
	}
	headers = append(headers, extraHeaders...)
	headers = append(headers, "", body)
	return strings.Join(headers, "\r\n")
}

func parseAddress(from string) string {
	start := strings.Index(from, "<")
	end := strings.Index(from, ">")
	if start >= 0 && end > start {
		return strings.TrimSpace(from[start+1 : end])
	}
	return strings.TrimSpace(from)
}
