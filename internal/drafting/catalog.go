package drafting

import "pocsclinic/internal/i18n"

// Catalog is the built-in list of article outlines.
var Catalog = []Topic{
	{
		ID:        "gallstone-formation",
		Topic:     "胆结石成因",
		Title:     "胆结石是怎样形成的？",
		TitleEn:   "How Do Gallstones Form?",
		Excerpt:   "从胆汁成分失衡到胆囊排空障碍，了解胆结石形成的主要机制和危险因素。",
		ExcerptEn: "From imbalanced bile to poor gallbladder emptying, the main mechanisms and risk factors behind gallstones.",
		Category:  i18n.CategoryGallstonePrevention,
		Intro:     "胆结石是肝胆外科最常见的疾病之一。很多患者在体检时才偶然发现结石，却并不清楚它是如何形成的。了解成因，是预防和合理治疗的第一步。",
		Mechanisms: []Definition{
			{Term: "胆固醇过饱和", Body: "胆汁中胆固醇含量过高，超过胆汁酸和卵磷脂的溶解能力，析出结晶。"},
			{Term: "胆囊动力减弱", Body: "胆囊收缩排空功能下降，胆汁淤积，结晶逐渐聚集成石。"},
			{Term: "成核因素增加", Body: "胆汁中黏蛋白等促成核物质增多，加速结石形成。"},
		},
		RiskFactors: []string{
			"长期不吃早餐或饮食不规律",
			"高脂、高胆固醇饮食",
			"肥胖或短期内快速减重",
			"妊娠、口服雌激素",
			"糖尿病、高脂血症等代谢性疾病",
		},
		Tips: []string{
			"规律三餐，尤其重视早餐",
			"控制体重，减重应循序渐进",
			"适量运动，每周至少150分钟",
			"定期进行肝胆超声检查",
		},
	},
	{
		ID:        "pocs-vs-cholecystectomy",
		Topic:     "POCS技术",
		Title:     "保胆取石与胆囊切除：如何选择？",
		TitleEn:   "Gallbladder-Preserving Surgery vs Cholecystectomy",
		Excerpt:   "POCS经口胆道镜技术与传统胆囊切除术在创伤、恢复和器官功能保留方面的对比。",
		ExcerptEn: "How POCS peroral cholangioscopy compares with traditional cholecystectomy on trauma, recovery and organ preservation.",
		Category:  i18n.CategoryTechnology,
		Intro:     "过去，胆囊结石的标准治疗是切除胆囊。随着内镜技术的发展，POCS（经口胆道镜）等微创技术让部分患者可以在取出结石的同时保留胆囊功能。",
		Comparison: &Table{
			Header: []string{"项目", "POCS保胆取石", "胆囊切除术"},
			Rows: [][]string{
				{"体表切口", "无", "3-4个小切口"},
				{"胆囊功能", "保留", "丧失"},
				{"住院时间", "1-3天", "3-5天"},
				{"术后消化影响", "较小", "部分患者出现腹泻、消化不良"},
			},
		},
		Advantages: []string{
			"体表无切口，创伤小",
			"保留胆囊的储存和浓缩胆汁功能",
			"恢复快，多数患者次日即可进食",
		},
		Tips: []string{
			"并非所有患者都适合保胆，需评估胆囊功能",
			"术前应完善超声、MRCP等影像检查",
			"术后需遵医嘱随访，降低复发风险",
		},
	},
	{
		ID:        "post-op-diet",
		Topic:     "术后饮食",
		Title:     "胆道术后饮食指南",
		TitleEn:   "Diet Guide After Biliary Surgery",
		Excerpt:   "胆道微创手术后分阶段恢复饮食的方法，以及需要避免的食物。",
		ExcerptEn: "A phased approach to eating after minimally invasive biliary surgery, and the foods to avoid.",
		Category:  i18n.CategoryDietaryGuidance,
		Intro:     "手术顺利只是康复的第一步。术后合理饮食能够减轻胆道负担、促进恢复，并降低结石复发的风险。",
		Phases: []string{
			"术后第1天：少量饮水，无不适后进食米汤、藕粉等清流质",
			"术后第2-3天：过渡到稀粥、烂面条等半流质",
			"术后1-2周：低脂软食，少量多餐",
			"术后1个月后：逐步恢复正常饮食，仍以清淡为主",
		},
		Tips: []string{
			"避免油炸食品、肥肉和动物内脏",
			"增加新鲜蔬菜和全谷物摄入",
			"戒酒，少喝浓茶和咖啡",
			"每日饮水1500-2000毫升",
		},
	},
	{
		ID:        "fatty-liver",
		Topic:     "脂肪肝",
		Title:     "脂肪肝与肝胆健康",
		TitleEn:   "Fatty Liver and Hepatobiliary Health",
		Excerpt:   "脂肪肝与胆结石常常相伴出现。了解二者的关联，做好日常肝胆保护。",
		ExcerptEn: "Fatty liver and gallstones often occur together. How they are linked and how to protect your liver day to day.",
		Category:  i18n.CategoryHepatobiliaryHealth,
		Intro:     "脂肪肝已经成为体检中最常见的异常之一。由于肝脏和胆道在代谢上密切相关，脂肪肝患者发生胆结石的风险也明显升高。",
		Mechanisms: []Definition{
			{Term: "胰岛素抵抗", Body: "同时促进肝内脂肪沉积和胆汁胆固醇过饱和。"},
			{Term: "胆汁酸代谢紊乱", Body: "肝脏合成和分泌胆汁酸的能力下降，胆汁成分失衡。"},
		},
		RiskFactors: []string{
			"腹型肥胖",
			"久坐少动",
			"长期饮酒",
			"高糖饮食",
		},
		Tips: []string{
			"减重5%-10%即可明显改善脂肪肝",
			"限制含糖饮料",
			"每半年复查肝功能和肝胆超声",
		},
	},
	{
		ID:        "bile-duct-stones",
		Topic:     "胆管结石",
		Title:     "胆管结石的微创治疗",
		TitleEn:   "Minimally Invasive Treatment of Bile Duct Stones",
		Excerpt:   "胆总管和肝内胆管结石可引起黄疸和胆管炎，内镜微创技术让治疗更安全。",
		ExcerptEn: "Common bile duct and intrahepatic stones can cause jaundice and cholangitis; endoscopic techniques make treatment safer.",
		Category:  i18n.CategoryTechnology,
		Intro:     "与胆囊结石不同，胆管结石更容易引起胆道梗阻，出现腹痛、发热和黄疸，严重时可发展为急性化脓性胆管炎，需要及时处理。",
		Comparison: &Table{
			Header: []string{"方式", "适用情况", "特点"},
			Rows: [][]string{
				{"ERCP取石", "胆总管结石", "经十二指肠镜，无切口"},
				{"POCS直视碎石", "巨大或嵌顿结石", "胆道镜直视下激光或液电碎石"},
				{"开腹胆道探查", "复杂肝内胆管结石", "创伤较大，适应证有限"},
			},
		},
		Advantages: []string{
			"直视下碎石，结石清除率高",
			"对胆道损伤小",
			"可同时明确胆管狭窄等病变",
		},
		Extra: []Section{
			Heading{Text: "何时需要尽快就医"},
			Bullets{Items: []string{
				"皮肤或眼白发黄",
				"右上腹剧痛伴发热、寒战",
				"尿色加深如浓茶",
			}},
		},
	},
}
