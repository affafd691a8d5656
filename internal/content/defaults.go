package content

import "github.com/supportbot/support-center/internal/model"

// Default 返回内置内容，每次调用都构造新的切片
func Default() *Content {
	return &Content{
		Greeting: "Hello! 👋 Welcome to TechNest Support. I can help with courses, enrollment, payments, certificates and account issues. What can I do for you today?",
		Fallback: "I'm not sure I understood that. For detailed help, please submit a support ticket or email support@technest.academy and a member of our team will get back to you within 24 hours.",
		Welcome:  "Hi there! I'm the TechNest virtual assistant. Ask me anything or pick one of the common questions below.",
		Keywords: []model.KeywordResponse{
			{Keyword: "password", Reply: "To reset your password, click \"Forgot Password\" on the login page and enter your registered email. You'll receive a reset link within a few minutes. Check your spam folder if it doesn't arrive."},
			{Keyword: "login", Reply: "If you're having trouble logging in, make sure you're using the email you registered with and clear your browser cache. Still stuck? Try resetting your password or contact support."},
			{Keyword: "enroll", Reply: "To enroll, open the course page, click \"Enroll Now\" and complete checkout. You'll get instant access to the course materials from your dashboard."},
			{Keyword: "course", Reply: "We offer hands-on programs in Web Development, Data Science, Cloud & DevOps, Cybersecurity and AI/ML. Browse the Courses page for syllabi, schedules and pricing."},
			{Keyword: "price", Reply: "Course prices vary by program and format. Visit each course page for current pricing, and check our Offers page for early-bird and group discounts."},
			{Keyword: "payment", Reply: "We accept all major credit and debit cards, UPI, net banking and PayPal. EMI options are available on select programs at checkout."},
			{Keyword: "refund", Reply: "We offer a full refund within 7 days of purchase if you've completed less than 20% of the course. Submit a ticket under \"Billing\" to start a refund request."},
			{Keyword: "certificate", Reply: "Certificates are issued automatically once you complete all modules and pass the final assessment. You can download them from the Certificates section of your dashboard."},
			{Keyword: "internship", Reply: "Top performers in our programs are eligible for internship placements with partner companies. Check the Careers page for current openings and eligibility."},
			{Keyword: "schedule", Reply: "Live sessions follow the schedule listed on each course page. All sessions are recorded and available in your dashboard within 24 hours."},
			{Keyword: "contact", Reply: "You can reach us at support@technest.academy, call +1 (555) 010-2040 (Mon–Sat, 9am–6pm), or submit a ticket from this page."},
			{Keyword: "thank", Reply: "You're welcome! Is there anything else I can help you with?"},
		},
		QuickReplies: []model.QuickReply{
			{Phrase: "How do I enroll in a course?", Reply: "Enrolling is easy: 1) open the course you like, 2) click \"Enroll Now\", 3) complete payment. Your course appears in your dashboard immediately."},
			{Phrase: "What payment methods do you accept?", Reply: "We accept credit/debit cards, UPI, net banking and PayPal. EMI is available on programs above $300."},
			{Phrase: "I forgot my password", Reply: "No problem! Click \"Forgot Password\" on the login page, enter your email and follow the reset link we send you."},
			{Phrase: "How do I get my certificate?", Reply: "Complete every module and pass the final assessment. Your certificate is generated automatically and can be downloaded from your dashboard."},
			{Phrase: "Talk to a human agent", Reply: "I'll connect you with our support team. Please submit a ticket using the form on this page, or email support@technest.academy. Our average response time is under 4 hours."},
		},
		Articles: []model.Article{
			{ID: "getting-started", Title: "Getting Started with Your Dashboard", Excerpt: "A tour of the student dashboard: courses, progress tracking and announcements.", Category: "general", ReadTime: "4 min"},
			{ID: "reset-password", Title: "How to Reset Your Password", Excerpt: "Step-by-step guide to recovering access to your account.", Category: "account", ReadTime: "2 min"},
			{ID: "payment-options", Title: "Payment Options and EMI Plans", Excerpt: "Everything about accepted payment methods, invoices and installment plans.", Category: "billing", ReadTime: "3 min"},
			{ID: "refund-policy", Title: "Understanding Our Refund Policy", Excerpt: "Eligibility, timelines and how to request a refund.", Category: "billing", ReadTime: "3 min"},
			{ID: "certificates", Title: "Downloading Your Course Certificate", Excerpt: "Where to find certificates and how to share them on LinkedIn.", Category: "courses", ReadTime: "2 min"},
			{ID: "live-sessions", Title: "Joining Live Sessions and Recordings", Excerpt: "How to join live classes and access session recordings.", Category: "courses", ReadTime: "3 min"},
			{ID: "troubleshooting-video", Title: "Troubleshooting Video Playback", Excerpt: "Fixes for buffering, audio issues and unsupported browsers.", Category: "technical", ReadTime: "5 min"},
		},
		FAQCategories: []model.FAQCategory{
			{ID: "account", Icon: "user", Title: "Account & Login", Items: []model.FAQEntry{
				{Question: "How do I create an account?", Answer: "Click Sign Up in the top-right corner and register with your email or Google account."},
				{Question: "Can I change my registered email?", Answer: "Yes. Go to Settings > Profile and update your email. You'll need to verify the new address."},
			}},
			{ID: "courses", Icon: "book", Title: "Courses & Learning", Items: []model.FAQEntry{
				{Question: "Are courses self-paced?", Answer: "Most courses combine self-paced modules with weekly live sessions. Recordings are always available."},
				{Question: "How long do I have access to a course?", Answer: "You get lifetime access to the course materials, including future updates."},
			}},
			{ID: "billing", Icon: "credit-card", Title: "Billing & Payments", Items: []model.FAQEntry{
				{Question: "Do you offer installment plans?", Answer: "EMI plans are available on select programs at checkout."},
				{Question: "How do I get an invoice?", Answer: "Invoices are emailed after purchase and available under Settings > Billing."},
			}},
			{ID: "technical", Icon: "settings", Title: "Technical Support", Items: []model.FAQEntry{
				{Question: "Which browsers are supported?", Answer: "The latest versions of Chrome, Firefox, Safari and Edge are supported."},
				{Question: "Videos keep buffering. What can I do?", Answer: "Lower the playback quality, close other tabs and check your connection speed."},
			}},
		},
		FAQItems: []model.FAQItem{
			{Question: "What is TechNest?", Answer: "TechNest is a **technology education and services** company offering industry-aligned courses, internships and IT consulting.", Icon: "info", Categories: []string{"general"}},
			{Question: "Do I need prior experience to join?", Answer: "No. Our **beginner tracks** start from fundamentals; advanced tracks list their prerequisites.", Icon: "help", Categories: []string{"general", "courses"}},
			{Question: "Are the courses online or offline?", Answer: "All programs are **online** with live mentor sessions. Some cities offer weekend bootcamps.", Icon: "monitor", Categories: []string{"courses"}},
			{Question: "Will I get a certificate?", Answer: "Yes, every program awards a **verifiable certificate** on completion.", Icon: "award", Categories: []string{"courses", "careers"}},
			{Question: "Do you provide placement assistance?", Answer: "We offer resume reviews, mock interviews and referrals to **hiring partners**.", Icon: "briefcase", Categories: []string{"careers"}},
			{Question: "What payment methods are accepted?", Answer: "Cards, UPI, net banking and PayPal. **EMI** is available on select programs.", Icon: "credit-card", Categories: []string{"payments"}},
			{Question: "What is the refund policy?", Answer: "Full refund within **7 days** if less than 20% of the course is completed.", Icon: "refresh", Categories: []string{"payments"}},
			{Question: "Do you build software for businesses?", Answer: "Yes, our services team delivers **web, mobile and cloud** projects. Request a quote from the Services page.", Icon: "code", Categories: []string{"services", "general"}},
			{Question: "What devices can I learn on?", Answer: "Any modern laptop or desktop. The platform also works on **tablets and phones**.", Icon: "smartphone", Categories: []string{"technical"}},
		},
		BlogPosts: []model.BlogPost{
			{ID: "react-server-components", Title: "A Practical Guide to React Server Components", Excerpt: "What server components change about data fetching and bundle size.", Author: "Ananya Rao", Date: "2024-05-12", Category: "frontend", Tags: []string{"react", "nextjs", "performance"}},
			{ID: "go-microservices", Title: "Building Microservices in Go", Excerpt: "Service boundaries, configuration and observability for small Go services.", Author: "Rahul Mehta", Date: "2024-04-28", Category: "backend", Tags: []string{"go", "microservices", "api"}},
			{ID: "github-actions-pipeline", Title: "Shipping Faster with a CI/CD Pipeline on GitHub Actions", Excerpt: "Automate tests, builds and deployments from pull request to production.", Author: "Karan Singh", Date: "2024-04-10", Category: "devops", Tags: []string{"cicd", "github-actions", "automation"}},
			{ID: "css-container-queries", Title: "Responsive Layouts with CSS Container Queries", Excerpt: "Move beyond media queries and size components by their container.", Author: "Ananya Rao", Date: "2024-03-22", Category: "frontend", Tags: []string{"css", "responsive", "design"}},
			{ID: "kubernetes-basics", Title: "Kubernetes Basics for Developers", Excerpt: "Pods, deployments and services explained with a simple example app.", Author: "Karan Singh", Date: "2024-03-05", Category: "cloud", Tags: []string{"kubernetes", "containers"}},
			{ID: "intro-llms", Title: "An Introduction to Large Language Models", Excerpt: "How LLMs are trained and where they fit in everyday applications.", Author: "Priya Nair", Date: "2024-02-14", Category: "ai", Tags: []string{"ai", "machine-learning"}},
		},
		TicketCategories: []model.TicketCategory{
			{ID: "technical", Title: "Technical Issue", Description: "Problems with the platform, videos, labs or login."},
			{ID: "billing", Title: "Billing & Payments", Description: "Payments, invoices, EMI and refunds."},
			{ID: "courses", Title: "Course Content", Description: "Questions about modules, assignments and certificates."},
			{ID: "account", Title: "Account Management", Description: "Profile changes, email updates and account deletion."},
			{ID: "other", Title: "Other", Description: "Anything else we can help with."},
		},
	}
}
