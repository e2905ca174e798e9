// Package catalog holds the static selection data that drives the interview
// setup flow: the roles on offer, the topic groups per role, the difficulty
// levels, and the languages supported for transcription. The data is
// read-only; the evaluation core never depends on it.
package catalog

import (
	"regexp"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
)

// Role is a selectable interview role.
type Role struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Language is a supported transcription language.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

var roles = []Role{
	{
		Name:        "Software Engineer",
		Slug:        "software-engineer",
		Description: "Algorithms, data structures, and systems design.",
	},
	{
		Name:        "Product Manager",
		Slug:        "product-manager",
		Description: "Product strategy, prioritization, and execution.",
	},
	{
		Name:        "UX Designer",
		Slug:        "ux-designer",
		Description: "Design process, collaboration, and portfolio review.",
	},
	{
		Name:        "Data Analyst",
		Slug:        "data-analyst",
		Description: "SQL, statistics, and data visualization questions.",
	},
}

// topicsByRole maps a role slug to its topic groups and subtopics.
var topicsByRole = map[string]map[string][]string{
	"software-engineer": {
		"Data Structures & Algorithms": {
			"Arrays", "Strings", "Linked Lists", "Stacks", "Queues",
			"Heaps / Priority Queues", "Trees (Binary, BST, Trie)",
			"Graphs (BFS, DFS, Dijkstra)", "Hash Maps / Hash Sets",
			"Sliding Window Technique", "Two Pointer Technique",
			"Recursion & Backtracking", "Dynamic Programming",
			"Greedy Algorithms", "Bit Manipulation",
			"Time and Space Complexity",
		},
		"Software Design & Architecture": {
			"Object-Oriented Programming (OOP)",
			"Design Patterns (Singleton, Factory, Observer)",
			"Low-Level Design (Class Design)",
			"High-Level Design (System Design)",
			"RESTful API Design", "Microservices vs Monolithic",
		},
		"Databases": {
			"SQL Queries (Joins, Aggregates, Subqueries)", "Window Functions",
			"Database Design (Schema, ER Models)",
			"Indexing and Query Optimization",
			"Transactions and ACID Properties", "NoSQL Databases", "CAP Theorem",
		},
		"Operating Systems & Networking": {
			"Processes vs Threads", "Deadlocks and Race Conditions",
			"Memory Management (Stack vs Heap)",
			"Networking Basics (TCP/IP, OSI Model)",
			"HTTP, HTTPS, and WebSockets",
		},
		"Security": {
			"Authentication vs Authorization (OAuth, JWT)",
			"Hashing and Encryption",
			"Common Vulnerabilities (SQL Injection, XSS)",
		},
		"Software Development Lifecycle & DevOps": {
			"Git and Version Control", "CI/CD Basics",
			"Docker and Containerization", "Agile Methodologies",
			"Monitoring & Logging", "Cloud Basics (AWS, GCP, Azure)",
		},
		"Behavioral": {
			"STAR Method", "Teamwork and Conflict Resolution",
			"Motivation and Career Goals", "Handling Failure",
		},
	},
	"product-manager": {
		"Product Sense & Design": {
			"User Research & Customer Empathy", "Problem Identification & Framing",
			"Market Research & Competitor Analysis", "Product Lifecycle Management",
			"Defining & Prioritizing Features", "Feature Trade-offs (Impact vs Effort)",
			"Usability & UX Principles", "Design Thinking Process",
			"Building 0 to 1 Products", "Scaling Products 1 to 100",
		},
		"Strategy & Roadmapping": {
			"Roadmapping & Strategic Planning",
			"Writing Product Requirements Documents (PRD)",
			"Product Launch Planning", "Go-to-Market (GTM) Strategy",
			"Product-Market Fit", "Vision vs Execution Tradeoffs",
		},
		"Execution & Agile": {
			"Agile Methodology (Scrum vs Kanban)", "Writing User Stories",
			"Sprint Planning & Backlog Grooming", "Customer Feedback Loops",
			"Incident Handling / Crisis Response",
		},
		"Data & Metrics": {
			"Metrics & KPIs (North Star, Retention)",
			"A/B Testing and Experimentation",
			"Funnel Analysis & Conversion Optimization",
			"Prioritization Frameworks (RICE, MoSCoW)", "OKRs and Goal Setting",
			"SQL for Product Managers", "Estimation Questions",
		},
		"Leadership & Communication": {
			"Stakeholder Management", "Cross-functional Collaboration",
			"Communication & Presentation Skills", "Managing Up & Influence",
			"Leading Through Ambiguity", "Conflict Resolution",
		},
		"Behavioral & Interviewing": {
			"Behavioral Questions (STAR Method)", "Handling Difficult Feedback",
			"Handling Failure", "PM Interview Frameworks (CIRCLES, AARM)",
			"Career Motivation & Role Fit",
		},
	},
	"ux-designer": {
		"UX Research & Strategy": {
			"User Research Fundamentals", "User Interviews & Surveys",
			"Persona Creation & Empathy Mapping", "Journey Mapping & Task Analysis",
			"Heuristic Evaluation & Usability Testing", "A/B Testing",
			"Information Architecture (IA)",
		},
		"Design, Prototyping & Visuals": {
			"Wireframing (Low to High Fidelity)", "Prototyping (Clickable Prototypes)",
			"Design Tools (Figma, Sketch, XD)", "Interaction Design Principles",
			"Visual Design (Color, Typography, Layout)", "UI Design Patterns",
			"Responsive & Mobile-First Design",
		},
		"Design Systems & Principles": {
			"Design Systems & Component Libraries", "Atomic Design",
			"Human-Centered Design (HCD)", "Design Thinking Process",
			"Inclusive Design & Accessibility (WCAG)", "Ethical UX & Dark Patterns",
		},
		"Collaboration & Communication": {
			"Working with PMs & Engineers", "Agile/Scrum Team Collaboration",
			"Conducting Design Critiques", "Presenting Design Work & Storytelling",
			"Stakeholder Management", "Developer Handoffs (Specs, Assets)",
		},
		"Portfolio & Interviewing": {
			"Portfolio Walkthrough & Case Studies", "Whiteboard Challenges",
			"App Redesign Critique", "Behavioral Questions (STAR Method)",
			"Career Motivation (\"Why UX?\")",
		},
	},
	"data-analyst": {
		"Core Data Skills": {
			"Data Cleaning & Preprocessing", "Data Wrangling",
			"Handling Missing or Duplicate Data", "Data Types & Structures",
			"Exploratory Data Analysis (EDA)", "Outlier Detection & Handling",
			"Data Aggregation", "Data Validation",
		},
		"SQL & Databases": {
			"SELECT, WHERE, GROUP BY, ORDER BY", "JOINs (INNER, LEFT, RIGHT, FULL)",
			"Subqueries and CTEs", "Window Functions (ROW_NUMBER, RANK, LEAD/LAG)",
			"Aggregation Functions (SUM, AVG, COUNT)", "CASE Statements",
			"Indexes and Query Optimization", "Data Modeling Basics",
		},
		"Data Visualization": {
			"Charts (Bar, Line, Pie, Area, Scatter, Histogram)", "Dashboards",
			"Choosing the Right Chart", "Storytelling with Data",
			"DataViz Tools (Tableau, Power BI, Looker)",
			"Creating Reports for Business Users",
		},
		"Statistics & Probability": {
			"Mean, Median, Mode, Standard Deviation",
			"Distribution Types (Normal, Skewed)",
			"Hypothesis Testing (p-values, z-test, t-test)",
			"Confidence Intervals", "A/B Testing", "Correlation vs Causation",
			"Regression Analysis", "Sampling Techniques",
		},
		"Excel & Spreadsheets": {
			"VLOOKUP / XLOOKUP", "Pivot Tables", "Conditional Formatting",
		},
	},
}

var languages = []Language{
	{Name: "English (US)", Code: "en-US"},
	{Name: "Spanish (Spain)", Code: "es-ES"},
	{Name: "French (France)", Code: "fr-FR"},
	{Name: "German (Germany)", Code: "de-DE"},
	{Name: "Japanese (Japan)", Code: "ja-JP"},
	{Name: "Chinese (Mandarin, Simplified)", Code: "cmn-CN"},
}

// Roles returns the selectable roles.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// TopicsForRole returns the topic groups for a role slug.
func TopicsForRole(slug string) (map[string][]string, bool) {
	topics, ok := topicsByRole[slug]
	if !ok {
		return nil, false
	}
	out := make(map[string][]string, len(topics))
	for group, subtopics := range topics {
		c := make([]string, len(subtopics))
		copy(c, subtopics)
		out[group] = c
	}
	return out, true
}

// Difficulties returns the selectable difficulty levels in ascending order.
func Difficulties() []types.Difficulty {
	return []types.Difficulty{types.DifficultyEasy, types.DifficultyMedium, types.DifficultyHard}
}

// Languages returns the languages supported for answer transcription.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a display name into a URL-safe slug, the same way the
// selection UI builds its topic keys.
func Slugify(text string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}
