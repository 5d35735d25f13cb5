// Package quiz implements the question catalog, the weighted scoring engine,
// and the recommendation catalog it feeds.
package quiz

import "github.com/brisa-digital/quiz-crm/internal/model"

// questions is the fixed, ordered question catalog. IDs are the 1-based
// position and double as the navigation key. Immutable at runtime.
var questions = []model.Question{
	{
		ID:     1,
		Prompt: "Qual é a sua área de atuação?",
		Options: []model.Option{
			{ID: "1a", Label: "Sou um profissional autônomo (médico, advogado, etc.)", Value: "professional"},
			{ID: "1b", Label: "Sou artista ou trabalho com design/criação", Value: "creative"},
			{ID: "1c", Label: "Tenho uma pequena empresa ou comércio", Value: "business"},
			{ID: "1d", Label: "Quero vender produtos pela internet", Value: "ecommerce"},
			{ID: "1e", Label: "Estou começando meu negócio agora", Value: "startup"},
		},
	},
	{
		ID:     2,
		Prompt: "O que você quer que as pessoas façam ao visitar seu site?",
		Options: []model.Option{
			{ID: "2a", Label: "Me ligar ou enviar mensagem para contratar meus serviços", Value: "professional"},
			{ID: "2b", Label: "Ver meus trabalhos e projetos", Value: "portfolio"},
			{ID: "2c", Label: "Comprar produtos online", Value: "ecommerce"},
			{ID: "2d", Label: "Conhecer melhor minha empresa e serviços", Value: "business"},
			{ID: "2e", Label: "Preencher um formulário de contato", Value: "landing"},
		},
	},
	{
		ID:     3,
		Prompt: "O que é mais importante para você em um site?",
		Options: []model.Option{
			{ID: "3a", Label: "Que seja bonito e passe credibilidade", Value: "professional"},
			{ID: "3b", Label: "Que destaque bem minhas fotos e trabalhos", Value: "gallery"},
			{ID: "3c", Label: "Que seja fácil de comprar e pagar", Value: "ecommerce"},
			{ID: "3d", Label: "Que apareça bem nas buscas do Google", Value: "seo"},
			{ID: "3e", Label: "Que seja simples e carregue rápido", Value: "basic"},
		},
	},
	{
		ID:     4,
		Prompt: "Como você pretende se comunicar com seus clientes?",
		Options: []model.Option{
			{ID: "4a", Label: "Principalmente por telefone e WhatsApp", Value: "contact"},
			{ID: "4b", Label: "Através de um formulário de contato no site", Value: "form"},
			{ID: "4c", Label: "Por redes sociais integradas ao site", Value: "social"},
			{ID: "4d", Label: "Sistema de agendamento online", Value: "appointment"},
			{ID: "4e", Label: "Chat ao vivo no site", Value: "chat"},
		},
	},
	{
		ID:     5,
		Prompt: "Quanto tempo você tem para cuidar do seu site?",
		Options: []model.Option{
			{ID: "5a", Label: "Quase nenhum, preciso que seja automático", Value: "lowmaintenance"},
			{ID: "5b", Label: "Posso atualizar de vez em quando", Value: "occasional"},
			{ID: "5c", Label: "Tenho interesse em atualizar regularmente", Value: "regular"},
			{ID: "5d", Label: "Quero me envolver bastante com o site", Value: "highinvolvement"},
			{ID: "5e", Label: "Prefiro que alguém faça tudo para mim", Value: "outsource"},
		},
	},
	{
		ID:     6,
		Prompt: "Qual a importância do seu site para seu negócio?",
		Options: []model.Option{
			{ID: "6a", Label: "É apenas uma presença online básica", Value: "basic"},
			{ID: "6b", Label: "É uma ferramenta importante de marketing", Value: "marketing"},
			{ID: "6c", Label: "É o principal canal de vendas/contatos", Value: "primary"},
			{ID: "6d", Label: "É uma extensão da minha marca/identidade", Value: "branding"},
			{ID: "6e", Label: "É crucial para o crescimento do negócio", Value: "growth"},
		},
	},
}

// Questions returns the ordered question catalog. The returned slice is shared;
// callers must not mutate it.
func Questions() []model.Question {
	return questions
}

// QuestionByID returns the question with the given 1-based ID, or nil when the
// ID is out of range.
func QuestionByID(id int) *model.Question {
	if id < 1 || id > len(questions) {
		return nil
	}
	return &questions[id-1]
}

// optionValue resolves the semantic value of a chosen option. The empty string
// and false are returned when either the question or the option is unknown;
// the scoring engine treats that as a silently ignored answer rather than an
// error.
func optionValue(questionID int, optionID string) (string, bool) {
	q := QuestionByID(questionID)
	if q == nil {
		return "", false
	}
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt.Value, true
		}
	}
	return "", false
}
