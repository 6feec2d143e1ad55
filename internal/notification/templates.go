package notification

import (
	"fmt"

	"github.com/agendalivre/agenda-api/internal/models"
)

const dateLayout = "02/01/2006"

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func clientConfirmationMessage(ap *models.Appointment, pro *models.Professional, serviceName string) string {
	return fmt.Sprintf(`🗓️ *Agendamento Confirmado!*

Olá %s!

Seu agendamento foi confirmado com sucesso:

👨‍⚕️ *Profissional:* %s
🛠️ *Serviço:* %s
📅 *Data:* %s
⏰ *Horário:* %s

📍 *Local:* %s

📞 *Contato do profissional:* %s

⚠️ *Importante:* Chegue com 10 minutos de antecedência.

Em caso de dúvidas ou necessidade de reagendamento, entre em contato conosco.

Obrigado por escolher nossos serviços! 😊`,
		ap.ClientName,
		pro.Name,
		serviceName,
		ap.Date.Format(dateLayout),
		ap.Time,
		orFallback(pro.Address, "A definir"),
		pro.Phone,
	)
}

func professionalNotificationMessage(ap *models.Appointment, serviceName string) string {
	return fmt.Sprintf(`📋 *Novo Agendamento!*

Você tem um novo agendamento:

👤 *Cliente:* %s
📞 *Telefone:* %s
🛠️ *Serviço:* %s
📅 *Data:* %s
⏰ *Horário:* %s

📧 *Email:* %s
📍 *Endereço do cliente:* %s

💬 *Observações:* %s

Acesse seu painel para gerenciar este agendamento.`,
		ap.ClientName,
		ap.ClientPhone,
		serviceName,
		ap.Date.Format(dateLayout),
		ap.Time,
		orFallback(ap.ClientEmail, "Não informado"),
		orFallback(ap.ClientAddress, "Não informado"),
		orFallback(ap.Notes, "Nenhuma observação"),
	)
}

func reminderMessage(ap *models.Appointment, pro *models.Professional, serviceName string) string {
	return fmt.Sprintf(`⏰ *Lembrete de Agendamento*

Olá %s!

Lembramos que você tem um agendamento amanhã:

👨‍⚕️ *Profissional:* %s
🛠️ *Serviço:* %s
📅 *Data:* %s
⏰ *Horário:* %s

📍 *Local:* %s

Não esqueça! Chegue com 10 minutos de antecedência.

📞 *Contato:* %s`,
		ap.ClientName,
		pro.Name,
		serviceName,
		ap.Date.Format(dateLayout),
		ap.Time,
		orFallback(pro.Address, "A definir"),
		pro.Phone,
	)
}

func cancellationMessage(ap *models.Appointment, pro *models.Professional, serviceName, reason string) string {
	reasonLine := ""
	if reason != "" {
		reasonLine = fmt.Sprintf("*Motivo:* %s\n\n", reason)
	}

	return fmt.Sprintf(`❌ *Agendamento Cancelado*

Olá %s,

Informamos que seu agendamento foi cancelado:

👨‍⚕️ *Profissional:* %s
🛠️ *Serviço:* %s
📅 *Data:* %s
⏰ *Horário:* %s

%sPara reagendar, acesse nosso site ou entre em contato.

📞 *Contato:* %s

Pedimos desculpas pelo inconveniente.`,
		ap.ClientName,
		pro.Name,
		serviceName,
		ap.Date.Format(dateLayout),
		ap.Time,
		reasonLine,
		pro.Phone,
	)
}

func professionalCancellationMessage(ap *models.Appointment) string {
	return fmt.Sprintf(
		"Agendamento cancelado: %s - %s %s",
		ap.ClientName,
		ap.Date.Format(dateLayout),
		ap.Time,
	)
}
