package analyze

// technicalSkills is the fixed skill vocabulary matched as case-insensitive
// substrings of the description.
var technicalSkills = []string{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go", "rust", "scala", "kotlin",
	"swift", "objective-c", "r", "matlab", "perl", "shell", "bash", "powershell",

	// Web technologies
	"html", "css", "sass", "scss", "less", "bootstrap", "tailwind", "react", "angular", "vue.js", "vue",
	"node.js", "express", "django", "flask", "fastapi", "spring", "laravel", "rails", "asp.net",

	// Databases
	"sql", "mysql", "postgresql", "oracle", "mongodb", "redis", "elasticsearch", "cassandra", "dynamodb",
	"sqlite", "mariadb", "neo4j", "influxdb",

	// Cloud and DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "gitlab", "github", "bitbucket",
	"terraform", "ansible", "chef", "puppet", "nginx", "apache", "linux", "windows", "macos",

	// Data Science and ML
	"machine learning", "deep learning", "ai", "neural networks", "pandas", "numpy", "scikit-learn",
	"tensorflow", "pytorch", "keras", "opencv", "nlp", "computer vision", "data science", "analytics",
	"tableau", "power bi", "excel", "stata", "spss",

	// Mobile Development
	"android", "ios", "react native", "flutter", "xamarin", "ionic", "cordova",

	// Testing
	"selenium", "cypress", "jest", "junit", "pytest", "mocha", "chai", "cucumber",

	// Other tools
	"git", "svn", "jira", "confluence", "slack", "teams", "figma", "sketch", "photoshop",
	"illustrator", "agile", "scrum", "kanban", "devops", "ci/cd",
}

var softSkills = []string{
	"leadership", "communication", "teamwork", "problem solving", "analytical thinking",
	"creativity", "adaptability", "time management", "project management", "mentoring",
	"collaboration", "critical thinking", "attention to detail", "customer service",
}

// urgencyKeywords each add the configured increment to the urgency score.
var urgencyKeywords = []string{
	"urgent", "asap", "immediately", "urgent requirement", "immediate joining",
	"walk-in", "same day", "quick", "fast", "rush", "emergency",
	"limited time", "deadline", "expires soon", "closing soon",
}

// qualitySections are the key section keywords the quality score rewards.
var qualitySections = []string{
	"requirements", "responsibilities", "benefits", "experience", "skills",
}

// jobCategories is the fixed label set offered to the classification
// capability.
var jobCategories = []string{
	"Software Development", "Data Science", "Marketing", "Sales", "HR",
	"Finance", "Operations", "Customer Service", "Design", "Engineering",
	"Healthcare", "Education", "Consulting", "Legal", "Administration",
}

// Experience-level cascade, checked in order; first matching tier wins.
var experienceTiers = []struct {
	level string
	terms []string
}{
	{"fresher", []string{"fresher", "0 year", "0-1 year", "entry level", "no experience"}},
	{"entry_level", []string{"1-3 year", "2-4 year", "junior", "associate"}},
	{"mid_level", []string{"3-5 year", "4-6 year", "mid level", "intermediate"}},
	{"senior_level", []string{"5+ year", "6+ year", "senior", "lead", "principal"}},
	{"executive", []string{"manager", "director", "head", "vp", "cto", "ceo"}},
}

var remoteKeywords = []string{
	"remote", "work from home", "wfh", "telecommute", "distributed",
	"anywhere", "flexible location", "home office", "virtual",
}

var salaryTerms = []string{"salary", "compensation", "pay", "₹", "lakh", "lpa"}

var companySizeBuckets = []struct {
	size  string
	terms []string
}{
	{"startup", []string{"startup", "early stage", "growing team", "small team"}},
	{"large", []string{"enterprise", "multinational", "global", "fortune", "large organization"}},
	{"medium", []string{"mid-size", "medium", "established"}},
}
