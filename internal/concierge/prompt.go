package concierge

import (
	"fmt"
	"strings"

	"github.com/reserveapp/reserve-server/internal/domain"
)

// Sampling bundles the temperature and output cap for a prompt kind.
type Sampling struct {
	Temperature float64
	MaxTokens   int
}

// Sampling parameters per prompt kind.
var (
	SamplingDiscovery = Sampling{Temperature: 0.7, MaxTokens: 1000}
	SamplingCatalog   = Sampling{Temperature: 0.9, MaxTokens: 1500}
	SamplingEdition   = Sampling{Temperature: 0.8, MaxTokens: 4000}
	SamplingSummary   = Sampling{Temperature: 0.4, MaxTokens: 200}
)

// PromptConstraints enumerates the active constraints for a single prompt
// build. One builder handles every combination; there are no per-surface
// prompt variants.
type PromptConstraints struct {
	ChildSafety bool
	Origin      OriginRequirement
	AgeHint     int
}

// CatalogSystem is the persona preamble for catalog-constrained requests.
const CatalogSystem = `You are a deeply perceptive literary concierge with exceptional emotional intelligence. You understand what readers truly need based on their emotional state, life context, and reading intentions - not just their surface request.

Your superpower: matching the right book to the right moment in someone's life. A person feeling "stuck" needs energizing momentum, not more contemplation. Someone lonely needs warm human connection. Someone grieving needs gentle presence, not solutions.

Analyze deeply. Recommend thoughtfully. Write rationales that show you truly understand their moment.`

// SummarySystem is the persona preamble for book-summary requests.
const SummarySystem = `You are a literary curator who writes beautiful, evocative book summaries that capture the soul of a story. Your writing is poetic yet concise, inviting yet precise.`

// BuildDiscoveryPrompt asks the backend to recommend real books from its
// own knowledge, outside the catalog.
func BuildDiscoveryPrompt(message string, c PromptConstraints) string {
	var b strings.Builder

	b.WriteString("You are a knowledgeable book expert helping find books for readers.\n\n")
	fmt.Fprintf(&b, "User's request: %q", message)
	if c.AgeHint > 0 {
		fmt.Fprintf(&b, "\nAge: %d years old", c.AgeHint)
	}
	b.WriteString("\n\nTask: Recommend 3 specific, real books that perfectly match this request.\n")

	if c.ChildSafety {
		age := "unknown"
		if c.AgeHint > 0 {
			age = fmt.Sprintf("%d", c.AgeHint)
		}
		fmt.Fprintf(&b, "\nCHILDREN'S REQUEST (Age %s):\n- ONLY children's books appropriate for this age\n- Picture books, chapter books, or early readers\n- NO adult books, textbooks, or advanced literature\n", age)
	}

	switch c.Origin {
	case OriginRequired:
		b.WriteString(`
CRITICAL - INDIAN AUTHORS EXPLICITLY REQUESTED:
- The user has EXPLICITLY requested Indian authors
- You MUST recommend ONLY Indian authors (100% Indian, 0% international)
- Examples: Arundhati Roy, Anita Desai, Kamala Das, Mahasweta Devi, Bama, Nabaneeta Dev Sen, Shashi Deshpande, Manju Kapur, Ambai, Ismat Chughtai
- DO NOT recommend Western/international authors
- If you cannot find 3 Indian books matching the request, return fewer suggestions rather than including non-Indian authors
`)
	case OriginBalanced:
		b.WriteString(`
INDIAN READER:
- Prioritize Indian authors when possible
- Include books relevant to Indian context
`)
	}

	b.WriteString(`
For each book provide:
1. Exact title and author
2. Why this book is perfect for their specific need (1-2 sentences)

Return JSON with this format:
{
  "title": "For your need",
  "books": [
    {
      "title": "Book Title",
      "author": "Author Name",
      "rationale": "Why this book fits their need perfectly",
      "year": 2020
    }
  ]
}

Important:
- Recommend REAL books that exist
- Match the specific need (teaching concepts, age-appropriate, etc.)
- Use warm, personal language in rationales
- Return 3 books maximum`)

	return b.String()
}

// BuildCatalogPrompt asks the backend to choose from the candidate pool.
// excludedCount tells the backend how many books the reader has already
// been offered; ctx, when present, colors the recommendation with weather
// and season.
func BuildCatalogPrompt(message string, candidates []domain.BookRecord, c PromptConstraints, excludedCount int, ctx *domain.ReadingContext) string {
	var b strings.Builder

	b.WriteString("You are a deeply perceptive literary concierge for a physical-book reading room. Your gift is understanding what readers truly need emotionally, contextually, and intellectually.")
	b.WriteString(constraintSection(c))
	b.WriteString("\n\nANALYZE THE REQUEST FIRST:\n\n")
	fmt.Fprintf(&b, "User's request: %q", message)
	if excludedCount > 0 {
		fmt.Fprintf(&b, "\n\nNote: User is asking for MORE suggestions (beyond the %d books already suggested). Provide different books that also match their need.", excludedCount)
	}
	b.WriteString(contextSection(ctx, c.Origin))

	b.WriteString(`

1. EMOTIONAL STATE - What are they feeling?
   - Stuck/Overwhelmed/Burned out -> Need: Energizing, accessible books with forward momentum (NOT contemplative/slow)
   - Anxious/Restless -> Need: Immersive escape OR gentle grounding depending on tone
   - Lonely/Disconnected -> Need: Warm books with strong human connection and intimacy
   - Grieving/Heavy heart -> Need: Gentle wisdom that sits with sadness, not "fix-it" books
   - Drained/Exhausted -> Need: Light, replenishing reads; avoid demanding books
   - Need confidence/motivation -> Need: Quiet courage, resilience without toxic positivity
   - Seeking joy/delight -> Need: Playful, life-affirming, delightful books
   - Scattered/Distracted/Need focus -> Need: Books about essentialism, clarity, priorities; philosophical essays on what matters
   - Want clarity/perspective -> Need: Wisdom literature, philosophical essays, contemplative non-fiction

2. LIFE CONTEXT - What's happening in their life?
   - New parent/caregiver -> Short sessions, life-affirming, easy to pick up/put down
   - Career change/transition -> Stories of reinvention, finding purpose, change
   - Dealing with loss -> Avoid cheerfulness; offer presence and gentle wisdom
   - Travel/vacation -> Place-based immersion, atmospheric escape
   - Weekend vs commute -> Session length and intensity matter
   - Seasonal mood -> Winter coziness, summer lightness, autumn reflection

3. READING INTENTION - Why are they reading?
   - ESCAPE: Completely immersive, transporting, forget-the-world
   - LEARN: Accessible entry points for curiosity (not academic/dense)
   - COMFORT: Familiar patterns, warmth, gentle reassurance
   - CHALLENGE: Dense, rewarding, slow attention required
   - INSPIRE: Creativity, possibility, opening horizons
   - CONNECT: Deep human stories, emotional intimacy
   - GROUND: Quiet, meditative, finding stillness

4. SMART AVOIDANCE - What to skip?
   - "Light" requested -> Avoid heavy/tragic/dense/dark
   - "Overwhelmed" -> Avoid philosophical/abstract/demanding
   - "Quick" -> Avoid multi-volume epics or challenging prose
   - "Gentle" -> Avoid violence/harshness/cynicism
   - "Energizing" -> Avoid slow/contemplative/melancholic
   - "Focus" -> Avoid fragmented/experimental structure

5. MATCH ACCESSIBILITY TO ENERGY LEVEL
   - Low energy/overwhelmed -> Highly accessible, clear prose, engaging
   - High curiosity/excited -> Can handle more complexity
   - Fragmented time -> Short chapters, episodic structure
   - Deep focus available -> Reward sustained attention

RECOMMENDATION STRATEGY:

- Match emotional remedy to actual need (not surface request)
- Consider life constraints and context
- Write rationales that show you understand their situation
- Use warm, personal language: "When you're feeling X, this offers Y"
- Suggest 2-3 books with DISTINCT approaches to their need
- IMPORTANT: Prioritize VARIETY - choose books with different authors, genres, and tones
- If the user has asked multiple questions, try to suggest DIFFERENT books each time, not the same ones
- Mix well-known and lesser-known books when possible

Only recommend physical books from the provided candidate list. Do not mention ebooks, summaries, or reading in-app.

Return JSON only with shape: {"title": string, "suggestions": [{"bookId": string, "rationale": string}]}

The title should be 3-6 words that capture what you're offering (e.g., "For that overwhelmed feeling", "When you need companionship", "Gentle energy and light").

Rationales should be personal and show understanding: "When focus is scattered, this absorbs gently" or "For a heavy heart, this sits with you quietly" not generic "You might enjoy this."

Candidates:
`)

	for _, book := range candidates {
		fmt.Fprintf(&b, "- %s | %s by %s | genres: %s | moods: %s | %s\n",
			book.ID, book.Title, book.Author,
			orNA(book.Genres), orNA(book.Moods), book.Description)
	}

	return b.String()
}

// constraintSection renders the safety and representation constraint
// blocks for a catalog-constrained prompt.
func constraintSection(c PromptConstraints) string {
	var b strings.Builder

	if c.ChildSafety {
		audience := "CHILDREN'S"
		target := "children"
		examples := "Young adult novels, chapter books, age-appropriate fiction"
		if c.AgeHint > 0 {
			audience = fmt.Sprintf("AGE %d", c.AgeHint)
			target = fmt.Sprintf("%d-year-olds", c.AgeHint)
			if c.AgeHint <= 8 {
				examples = "Picture books, Dr. Seuss, Eric Carle, simple stories with illustrations"
			}
		}
		fmt.Fprintf(&b, `

CRITICAL CONTENT SAFETY - %s REQUEST:
You MUST:
- ONLY recommend books specifically written for %s
- NO academic texts, anthologies, grammar books, or advanced literature
- NO adult authors like Virginia Woolf, Montaigne, Kafka, Joyce
- ONLY children's books, picture books, early readers, or age-appropriate stories
- Examples of GOOD suggestions: %s
- Examples of BAD suggestions: Norton Anthology, Essays, Grammar textbooks, Classic literature not written for children`, audience, target, examples)
	}

	switch c.Origin {
	case OriginRequired:
		b.WriteString(`

CRITICAL - INDIAN AUTHORS EXPLICITLY REQUESTED:
You MUST recommend ONLY books by Indian authors (100% Indian):
- REQUIRED: All suggestions must be Indian authors
- Examples: R.K. Narayan, Ruskin Bond, Amitav Ghosh, Arundhati Roy, Jhumpa Lahiri, Vikram Seth, Anita Desai, Salman Rushdie, Rohinton Mistry, Kiran Desai, Aravind Adiga, Sudha Murty, Devdutt Pattanaik, Shashi Tharoor, Kamala Das, Mahasweta Devi
- DO NOT recommend any Western/international authors
- The candidate list has been filtered to ONLY Indian authors`)
	case OriginBalanced:
		b.WriteString(`

INDIAN READER - BALANCED REPRESENTATION:
You MUST maintain 50/50 balance in your 3 selections:
- REQUIRED: Select EXACTLY 1-2 Indian authors AND 1-2 international authors (NOT all Indian, NOT all international)
- For 3 suggestions: 2 Indian + 1 international OR 1 Indian + 2 international
- The candidate list has Indian and international authors available
- Indian authors include: R.K. Narayan, Ruskin Bond, Amitav Ghosh, Arundhati Roy, Jhumpa Lahiri, Vikram Seth, Anita Desai, Salman Rushdie, Rohinton Mistry, Kiran Desai, Aravind Adiga, Sudha Murty, Devdutt Pattanaik
- CRITICAL: Mix Indian AND international authors in your selections - do NOT select only one group
- Choose based on best fit for the request, but maintain the balance requirement`)
	}

	return b.String()
}

// contextSection renders reading-context lines plus the seasonal guidance
// sentence that matches the current conditions.
func contextSection(ctx *domain.ReadingContext, origin OriginRequirement) string {
	if ctx == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nCurrent Reading Context:\n")
	location := ctx.Location
	if location == "" {
		location = "Not specified"
	}
	fmt.Fprintf(&b, "- Location: %s\n", location)
	fmt.Fprintf(&b, "- Season: %s\n", ctx.Season)
	fmt.Fprintf(&b, "- Time of Day: %s", ctx.TimeOfDay)
	if ctx.Weather != nil {
		fmt.Fprintf(&b, "\n- Weather: %s, %d°C", ctx.Weather.Condition, ctx.Weather.Temp)
	}
	fmt.Fprintf(&b, "\n- Reading Mood: %s", ctx.ReadingMood)
	if origin != OriginNone {
		b.WriteString("\n- Cultural Context: Indian reader - prioritize Indian authors, settings, and cultural sensibilities")
	}

	b.WriteString("\n\nUSE THIS CONTEXT: Factor in the weather, season, and time of day when making recommendations. ")
	b.WriteString(seasonalGuidance(ctx))
	if origin != OriginNone {
		b.WriteString(" For Indian readers, actively prioritize books by Indian authors, books set in India, or themes relevant to Indian culture.")
	}
	return b.String()
}

func seasonalGuidance(ctx *domain.ReadingContext) string {
	if ctx.Weather != nil {
		condition := ctx.Weather.Condition
		if strings.Contains(condition, "Rain") {
			return "Rainy weather pairs well with cozy, introspective reads."
		}
		if strings.Contains(condition, "Sun") || strings.Contains(condition, "Clear") {
			return "Clear weather invites bright, energizing books."
		}
	}
	switch ctx.Season {
	case domain.SeasonWinter:
		return "Winter calls for contemplative, intimate reads."
	case domain.SeasonSummer:
		return "Summer energy suits lighter, adventurous books."
	default:
		return ""
	}
}

// BuildEditionPrompt asks the backend to curate the 20-book monthly
// edition from a balanced catalog sample.
func BuildEditionPrompt(sample []domain.BookRecord, ctx *domain.ReadingContext, monthName string) string {
	var b strings.Builder

	b.WriteString("You are curating this month's reading edition for Reserve, a mindful reading app focused on physical books and slow, intentional reading.\n")

	b.WriteString("\nCurrent Context:\n")
	fmt.Fprintf(&b, "- Month: %s\n", monthName)
	if ctx != nil {
		fmt.Fprintf(&b, "- Season: %s\n", ctx.Season)
		fmt.Fprintf(&b, "- Time of Day: %s\n", ctx.TimeOfDay)
		if ctx.Weather != nil {
			fmt.Fprintf(&b, "- Weather: %s, %d°C\n", ctx.Weather.Condition, ctx.Weather.Temp)
		}
		if ctx.Location != "" {
			fmt.Fprintf(&b, "- Location: %s\n", ctx.Location)
		}
		fmt.Fprintf(&b, "- Reading Mood: %s\n", ctx.ReadingMood)
	}

	b.WriteString(`
INDIAN READER - BALANCED CURATION:
- Aim for a balanced selection with approximately 10 Indian authors out of 20 books (around 50%)
- Indian authors include: R.K. Narayan, Ruskin Bond, Amitav Ghosh, Arundhati Roy, Jhumpa Lahiri, Vikram Seth, Tagore, Premchand, Sudha Murty, Devdutt Pattanaik, Chetan Bhagat, Amish Tripathi, and others
- Balance classic Indian literature with contemporary voices
- The remaining ~10 books should be diverse international authors
- Acceptable range: 8-12 Indian authors (40-60%)

IMPORTANT - Context-Driven Curation:
Based on the current month, season, weather, and location above, you must:
1. Choose GENRES that naturally fit this moment in time
   - Winter/Cold: contemplative, philosophical, intimate literary works
   - Spring: renewal-themed, nature writing, hopeful narratives
   - Summer: lighter literary fiction, travel narratives, adventure
   - Fall: reflective memoirs, cozy mysteries, atmospheric fiction
   - Rainy/Cloudy: introspective, cozy reads
   - Clear/Sunny: uplifting, energizing books

2. Consider the READING MOOD from the context - this tells you what readers need right now

Your task:
1. Create a cohesive THEME that directly responds to the current season, weather, and time of year
2. Write a brief (2-3 sentence) DESCRIPTION explaining how this edition fits the moment
3. Select EXACTLY 20 books that match BOTH the theme AND the seasonal context
4. For each book, write:
   - why_this_book: Explain specifically WHY this book fits THIS moment in time. Be literary and specific about how the book's content or mood matches the current context.
   - best_context: When/where to read it (e.g., "rainy afternoons", "before sunrise", "by a window", "during winter evenings")
   - estimated_sessions: Number between 3-8

Guidelines:
- CRITICAL: Your genre choices must feel natural for the current season and weather
- Each book's "why_this_book" must explain the connection to the current moment
- Mix genres but keep them seasonally appropriate
- Be specific and evocative - explain the "why" not just "what"
- Think about how the reading experience changes with the season

Available books:
`)

	for _, book := range sample {
		fmt.Fprintf(&b, "- %s | %s by %s | %s | %s\n",
			book.ID, book.Title, book.Author,
			strings.Join(headStrings(book.Genres, 2), ", "),
			strings.Join(headStrings(book.Moods, 2), ", "))
	}

	b.WriteString(`
Respond with ONLY valid JSON in this exact format (no markdown, no code blocks):
{
  "theme": "Theme title (3-6 words)",
  "description": "Brief description of the edition (2-3 sentences)",
  "books": [
    {
      "id": "book_id_from_catalog",
      "title": "book title",
      "author": "author name",
      "why_this_book": "Literary, specific reason this book fits the theme",
      "best_context": "when/where to read it",
      "estimated_sessions": 5,
      "genres": ["genre1", "genre2"]
    }
  ]
}`)

	return b.String()
}

// BuildSummaryPrompt asks the backend for an evocative two-sentence
// summary of a single book.
func BuildSummaryPrompt(title, author string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Book: %s", title)
	if author != "" {
		fmt.Fprintf(&b, " by %s", author)
	}
	b.WriteString(`.

Provide:
1. Author name (if not provided or if you can identify it)
2. A beautiful, evocative 2-3 sentence summary that captures the essence and atmosphere of this book. Use poetic, gentle language that invites the reader into the world of the story. Focus on themes, mood, and emotional resonance rather than plot details. Avoid spoilers. Keep it under 60 words.

Return JSON only: {"author": "Author Name", "summary": "..."}

If author is unknown, return empty string for author field.`)
	return b.String()
}

func orNA(tags []string) string {
	if len(tags) == 0 {
		return "n/a"
	}
	return strings.Join(tags, ", ")
}

func headStrings(items []string, n int) []string {
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
