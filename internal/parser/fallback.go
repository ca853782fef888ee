package parser

import (
	"fmt"

	"github.com/bnema/paperswipe/internal/domain"
)

var fallbackTopics = []string{
	"Deep Learning",
	"Natural Language Processing",
	"Computer Vision",
	"Reinforcement Learning",
	"Transfer Learning",
	"Generative Adversarial Networks",
	"Attention Mechanisms",
	"Neural Network Optimization",
	"Multimodal Learning",
	"Federated Learning",
}

// FallbackPapers returns count placeholder papers, cycling through a fixed
// topic list. The output is the same on every call.
func FallbackPapers(count int) []domain.Paper {
	papers := make([]domain.Paper, 0, count)
	for i := 0; i < count; i++ {
		topic := fallbackTopics[i%len(fallbackTopics)]
		papers = append(papers, domain.Paper{
			Title:   fmt.Sprintf("Recent Advances and Applications in %s", topic),
			Authors: "Zhang San, Li Si, Wang Wu et al.",
			Abstract: fmt.Sprintf("This paper examines key techniques and new methods for applying %s in practice. "+
				"Large-scale experiments show clear gains on several benchmark datasets, and the results indicate "+
				"that the approach generalizes well and stays robust in real deployments.", topic),
			Year:  domain.IntPtr(2024),
			Venue: "NeurIPS 2024",
			Tags:  []string{topic, "AI", "Machine Learning"},
		})
	}
	return papers
}
