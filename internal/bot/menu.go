package bot

import "github.com/socialhook/support-bot/internal/telegram"

// Capture-enabling sections. These are the section labels persisted on
// sessions and tickets.
const (
	SectionSchedule = "Schedule a Call"
	SectionSupport  = "Talk To Support"
)

// Callback data for menu navigation.
const (
	cbMainAgency   = "main:agency"
	cbMainCloaking = "main:cloaking"
	cbBackMain     = "nav:back:main"
	cbBackAgency   = "nav:back:agency"
	cbAgencyAbout  = "agency:about"
	cbAgencyHowTo  = "agency:howto"
	cbAgencyFAQ    = "agency:faq"
	cbAgencySched  = "agency:schedule"
	cbAgencySupp   = "agency:support"
)

const (
	cloakingURL = "https://socialhook.media/sp/cloaking-course/?utm_source=telegram"
	registerURL = "https://vantage.agency-aurora.com/?ref=SOCIALHOOK"
)

const (
	welcomeText    = "Welcome! Choose an option:"
	agencyMenuText = "Agency Ad Account Service — choose an option:"

	cloakingText = "🔥 Socialhook Cloaking Mastery Course is LIVE!\n" +
		"Learn how to run unrestricted ads on Meta & Google!\n" +
		"What you'll get:\n" +
		"✅ Step-by-step cloaking strategies\n" +
		"🛠 Secret tools & proven methods\n" +
		"🌐 Trusted by media buyers worldwide\n" +
		"💡 Perfect for affiliates, media buyers & marketers who want to scale FAST ⚡\n" +
		"🎯 Stop wasting time and money on unsuccessful ads and start running profitable campaigns!\n" +
		"Reviews: https://www.blackhatworld.com/seo/cloaking-mastery-bypass-ad-restrictions-scale-any-niche-20-off-for-bhw-meta-google.1729255/\n"

	aboutText = "We provide agency ad accounts for Meta, Google, Snapchat, TikTok, Bing, Taboola and Outbrain.\n\n" +
		"Here are some benefits of advertising on our ad accounts:\n" +
		"🛡 Manual credit line agency ad accounts: Higher quality ad accounts mean fewer restrictions. " +
		"Our clients report longer account lifespans and better approval rates than with their previous suppliers with card paid accounts.\n" +
		"💰 Low top-up fees: Enjoy 0-3% top-up fees for all major platforms, perfect for scaling your ads. Negotiable for big spenders.\n" +
		"💳 Bank/Credit Card/Crypto balance top-up options: Choose the payment method that works best for you.\n" +
		"🎁 If you spend 100k across 3 months, the fees will be fully refunded and you can receive up to 4% cashback on ad spend. " +
		"Get rewarded for your advertising investment!\n\n" +
		"The ad accounts are from HK, but you can run ads targeting any country in the world.\n\n" +
		"We don't provide aged or warmed up accounts. All accounts are newly made based on your requests.\n"

	howToText = "Step-by-step instructions to start our service and start receiving agency ad accounts:\n" +
		"1. Click on the link below and register to the self-service platform\n" +
		"2. Pick a plan for the platform you wish to advertise in. Once clicked, it should redirect to checkout with the free trial activated. " +
		"You won't be charged anything yet, only after the trial ends.\n" +
		"3. Top up your account balance in \"Wallet\" section with crypto, bank transfer or card payments\n" +
		"4. Request new ad accounts through \"Ad Accounts section\" with already loaded balance\n" +
		"5. Done! Now just wait for delivery. Under \"Support\" section you should see contacts of your account manager to communicate about account delivery or other issues.\n"

	faqText = "FAQ: Here is a list of our most common questions answered. please check if it is answered here for convenience:\n" +
		"❓Can I add my own card?\n" +
		"No, we provide agency credit line accounts, meaning that these accounts will have balances. You can request to top up or clear an account's balance through the self serve dashboard.\n" +
		"❓Do you provide business assets along with the ad accounts?\n" +
		"Our usual practise is to share the ad accounts with your Business Managers or Profiles. But for Meta, we can provide Business Managers together with the accounts free of charge. You can also buy aged reinstated FB profiles for your ads, reach out to support" +
		"❓Service Fee?\n" +
		"Service pricing for different platforms might be different, but for Meta it's:\n" +
		"- 300$ a month service access fee\n" +
		"- 0-3% ad account top up fee\n" +
		"We have this pricing in place in order to guarantee the best service possible, and to be able to deliver higher quality agency ad accounts at lower or no top up fees for high spending clients. \n" +
		"The top up fee is fully refunded if you spend 100k total in 3 months, and you might be eligible for cashback depending on your spend.\n" +
		"❓Minimum Top Up?\n" +
		"The minimum top up varies for each platform, for Meta it is 250$ to request an account, Google 1000$, TikTok 1000$. " +
		"Afterwards, you can top up any amount to the accounts once received.\n" +
		"❓What if an ad account gets banned?\n" +
		"We can try appealing the account for you, or you, or you can just request to clear out the balance. " +
		"We will refund you all the unused balance back in 1-2 business days.\n" +
		"❓Can I run BH/GH ads?\n" +
		"Yes, but use cloaking & account warmups to avoid bans.\n" +
		"❓Can I get a free trial or discount?\n" +
		"Yes, with our link you can receive 2 week free trial to test our service free of charge.\n"

	scheduleText = "To schedule a call, first please register on our platform using the link below. Afterwards, in this chat please send: \n" +
		" 1. The email you used for registration \n 2. Your platforms of interest \n 3. Approximate daily spend \n" +
		" We will check your message and send you details about possible call timeslots here in this chat:"

	supportText = "Please write your message and questions here, our team will get in touch with you as fast as possible:\n"

	ackText = "Thanks! Our team will get back to you here shortly. " +
		"In the meantime, you can restart the bot and read more about our service using command /start"

	endSupportText = "Your support session has ended. Send /start to browse the menu again."
)

func mainMenuKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
		{{Text: "📈📱 Agency Ad Account Service", CallbackData: cbMainAgency}},
		{{Text: "🎓 Cloaking Course", CallbackData: cbMainCloaking}},
	}}
}

func agencyMenuKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
		{{Text: "📝 About Ad Accounts", CallbackData: cbAgencyAbout}},
		{{Text: "📥 How To Receive Ad Accounts", CallbackData: cbAgencyHowTo}},
		{{Text: "❓ FAQ", CallbackData: cbAgencyFAQ}},
		{{Text: "📅📞 Schedule a Call", CallbackData: cbAgencySched}},
		{{Text: "💬🤝 Talk To Support", CallbackData: cbAgencySupp}},
		{{Text: "⬅️ Back", CallbackData: cbBackMain}},
	}}
}

func cloakingMenuKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
		{{Text: "🔗 Get Cloaking Mastery Now!", URL: cloakingURL}},
		{{Text: "⬅️ Back", CallbackData: cbBackMain}},
	}}
}

func backWithRegisterKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
		{{Text: "🔗 Register Now", URL: registerURL}},
		{{Text: "⬅️ Back", CallbackData: cbBackAgency}},
	}}
}
