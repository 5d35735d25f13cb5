package quiz

import (
	"fmt"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

// recommendations maps every Category to its immutable recommendation record.
var recommendations = map[model.Category]model.Recommendation{
	model.CategoryLanding: {
		Title:       "Página de Captação de Clientes",
		Description: "Uma página única e eficiente, ideal para conseguir contatos de potenciais clientes para seu negócio.",
		Features: []string{
			"Design atraente que funciona em celulares",
			"Formulário para captar contatos",
			"Depoimentos de clientes satisfeitos",
			"Botão para WhatsApp",
			"Aparece nas buscas do Google",
		},
		Benefits: []string{
			"Consegue mais contatos de clientes",
			"Carrega rapidamente mesmo em conexões lentas",
			"Comunica sua mensagem de forma direta",
			"Ideal para campanhas de divulgação",
			"Custo mais acessível",
		},
		Price:          "R$ 1.500 - R$ 3.000",
		Timeframe:      "1 a 2 semanas",
		Recommendation: "Perfeito para quem está começando ou quer testar uma ideia de negócio sem grande investimento inicial.",
	},
	model.CategoryProfessional: {
		Title:       "Site Profissional Essencial",
		Description: "Um site completo que passa credibilidade e gera mais contatos de clientes para profissionais e pequenos negócios.",
		Features: []string{
			"Design elegante e personalizado",
			"Apresentação clara dos seus serviços",
			"Página sobre você ou sua empresa",
			"Depoimentos de clientes",
			"Otimizado para buscas no Google",
		},
		Benefits: []string{
			"Passa mais credibilidade para seus clientes",
			"Aparece melhor nas buscas do Google",
			"Atrai clientes mais qualificados",
			"Você se destaca da concorrência",
			"Funciona 24 horas por dia captando contatos",
		},
		Price:          "R$ 3.500 - R$ 6.000",
		Timeframe:      "3 a 4 semanas",
		Recommendation: "Ideal para profissionais autônomos e pequenas empresas que querem crescer com uma presença digital profissional.",
	},
	model.CategoryPortfolio: {
		Title:       "Site Portfólio Visual",
		Description: "Um site que destaca seus trabalhos de forma visual e impactante, ideal para profissionais criativos.",
		Features: []string{
			"Galeria de trabalhos com filtros",
			"Detalhes de cada projeto",
			"Design personalizado e criativo",
			"Conexão com suas redes sociais",
			"Formulário para contatos de novos projetos",
		},
		Benefits: []string{
			"Mostra seus trabalhos de forma profissional",
			"Atrai novos clientes e projetos",
			"Se destaca visualmente da concorrência",
			"Fácil de adicionar novos projetos",
			"Demonstra sua qualidade e estilo",
		},
		Price:          "R$ 3.000 - R$ 5.500",
		Timeframe:      "2 a 4 semanas",
		Recommendation: "Perfeito para designers, fotógrafos, arquitetos e outros profissionais que precisam mostrar visualmente seu trabalho.",
	},
	model.CategoryBusiness: {
		Title:       "Site Institucional Completo",
		Description: "Um site completo para empresas que querem se posicionar profissionalmente e destacar seus diferenciais.",
		Features: []string{
			"Várias páginas bem organizadas",
			"Apresentação da empresa e equipe",
			"Detalhes dos produtos e serviços",
			"Casos de sucesso e depoimentos",
			"Área para notícias e atualizações",
		},
		Benefits: []string{
			"Fortalecer a imagem da sua empresa",
			"Aumentar a confiança dos clientes",
			"Melhorar o atendimento online",
			"Destacar diferenciais competitivos",
			"Gerar mais contatos qualificados",
		},
		Price:          "R$ 5.000 - R$ 9.000",
		Timeframe:      "4 a 6 semanas",
		Recommendation: "Recomendado para empresas que já estão estabelecidas e querem aumentar sua presença online e conseguir mais clientes.",
	},
	model.CategoryEcommerce: {
		Title:       "Loja Virtual Completa",
		Description: "Uma loja online para vender seus produtos pela internet de forma profissional e segura.",
		Features: []string{
			"Catálogo de produtos organizado",
			"Carrinho de compras otimizado",
			"Pagamento seguro integrado",
			"Cálculo automático de frete",
			"Painel para gerenciar pedidos e estoque",
		},
		Benefits: []string{
			"Venda seus produtos 24 horas por dia",
			"Alcance clientes em qualquer lugar",
			"Automatize suas vendas",
			"Reduza custos operacionais",
			"Aumente seu faturamento",
		},
		Price:          "R$ 8.000 - R$ 15.000",
		Timeframe:      "6 a 8 semanas",
		Recommendation: "Ideal para negócios que querem vender produtos online e expandir seu alcance para além da loja física.",
	},
	model.CategoryStartup: {
		Title:       "Site para Startups e Novos Negócios",
		Description: "Um site dinâmico e moderno para apresentar sua startup ou novo empreendimento de forma impactante.",
		Features: []string{
			"Design moderno e inovador",
			"Página de apresentação do produto/serviço",
			"Seção para captar leads e investidores",
			"Integração com ferramentas de marketing",
			"Otimizado para crescimento rápido",
		},
		Benefits: []string{
			"Comunicar sua proposta de valor com clareza",
			"Atrair primeiros clientes e parceiros",
			"Estabelecer credibilidade no mercado",
			"Perfeito para apresentações para investidores",
			"Flexível para crescer com seu negócio",
		},
		Price:          "R$ 4.000 - R$ 7.000",
		Timeframe:      "3 a 5 semanas",
		Recommendation: "Perfeito para startups, novos negócios e empreendedores que precisam de uma presença digital que transmita inovação.",
	},
}

// Recommend returns the recommendation record for the given category. The
// category set is closed and Score always returns a member of it, so an
// unknown category is a programming error and panics.
func Recommend(c model.Category) model.Recommendation {
	rec, ok := recommendations[c]
	if !ok {
		panic(fmt.Sprintf("quiz: no recommendation for category %q", c))
	}
	return rec
}

// RecommendOK is the lookup variant for boundaries that handle caller-supplied
// category strings.
func RecommendOK(c model.Category) (model.Recommendation, bool) {
	rec, ok := recommendations[c]
	return rec, ok
}
